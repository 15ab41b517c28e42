package postgres

import (
	"context"

	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/repositories"
	"gorm.io/gorm"
)

type ActivityPostgreSQL struct {
	db *gorm.DB
}

func NewActivityPostgreSQL(db *gorm.DB) repositories.ActivityRepository {
	return &ActivityPostgreSQL{db: db}
}

func (a ActivityPostgreSQL) Create(ctx context.Context, activity *models.Activity) error {
	return a.db.WithContext(ctx).Create(activity).Error
}

// GetByID returns the activity with its interactive data stripped to the
// lightweight shell. Callers needing to grade or edit must go through
// GetByIDWithContent.
func (a ActivityPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Activity, error) {
	activity, err := a.GetByIDWithContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity.InteractiveData != nil {
		activity.InteractiveData = activity.InteractiveData.Stripped()
	}
	return activity, nil
}

func (a ActivityPostgreSQL) GetByIDWithContent(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := a.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (a ActivityPostgreSQL) Update(ctx context.Context, activity *models.Activity) error {
	return a.db.WithContext(ctx).Save(activity).Error
}

func (a ActivityPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Activity{}, id).Error
}

func (a ActivityPostgreSQL) List(ctx context.Context, filters repositories.ActivityFilters) ([]*models.Activity, int64, error) {
	var activities []*models.Activity
	var total int64

	// apply filter first
	query := a.db.WithContext(ctx).Model(&models.Activity{})
	query = a.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = a.applyPaginationAndSort(query, filters)

	if err := query.Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	// list views travel stripped
	for _, activity := range activities {
		if activity.InteractiveData != nil {
			activity.InteractiveData = activity.InteractiveData.Stripped()
		}
	}

	return activities, total, nil
}

func (a ActivityPostgreSQL) GetByGroup(ctx context.Context, targetGroup string, filters repositories.ActivityFilters) ([]*models.Activity, int64, error) {
	filters.TargetGroup = &targetGroup
	return a.List(ctx, filters)
}

func (a ActivityPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.ActivityStatus) error {
	return a.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (a ActivityPostgreSQL) HasSubmissions(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.SubmissionRecord{}).
		Where("activity_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a ActivityPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ActivityFilters) *gorm.DB {
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.AssignmentType != nil {
		query = query.Where("assignment_type = ?", *filters.AssignmentType)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.TargetGroup != nil {
		query = query.Where("target_group = ?", *filters.TargetGroup)
	}
	if filters.VisibleToParents != nil {
		query = query.Where("is_visible_in_parents_portal = ?", *filters.VisibleToParents)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}

func (a ActivityPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.ActivityFilters) *gorm.DB {
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(sortBy + " " + sortOrder)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
