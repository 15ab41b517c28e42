package postgres

import (
	"context"

	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: db}
}

// Upsert creates or updates the record for its (student, activity) pair.
// Records are never implicitly deleted; resubmission and regrading mutate in
// place.
func (s SubmissionPostgreSQL) Upsert(ctx context.Context, record *models.SubmissionRecord) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "activity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "responses", "judgments", "score", "completed", "score_detail", "updated_at",
			}),
		}).
		Create(record).Error
}

func (s SubmissionPostgreSQL) GetByStudentAndActivity(ctx context.Context, studentID, activityID uint) (*models.SubmissionRecord, error) {
	var record models.SubmissionRecord
	if err := s.db.WithContext(ctx).
		Where("student_id = ? AND activity_id = ?", studentID, activityID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s SubmissionPostgreSQL) ListByActivity(ctx context.Context, activityID uint, filters repositories.SubmissionFilters) ([]*models.SubmissionRecord, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&models.SubmissionRecord{}).
		Where("activity_id = ?", activityID)
	return s.list(query, filters)
}

func (s SubmissionPostgreSQL) ListByStudent(ctx context.Context, studentID uint, filters repositories.SubmissionFilters) ([]*models.SubmissionRecord, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&models.SubmissionRecord{}).
		Where("student_id = ?", studentID)
	return s.list(query, filters)
}

func (s SubmissionPostgreSQL) list(query *gorm.DB, filters repositories.SubmissionFilters) ([]*models.SubmissionRecord, int64, error) {
	var records []*models.SubmissionRecord
	var total int64

	query = s.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("updated_at desc")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (s SubmissionPostgreSQL) applyFilters(query *gorm.DB, filters repositories.SubmissionFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.Completed != nil {
		query = query.Where("completed = ?", *filters.Completed)
	}
	if filters.DateFrom != nil {
		query = query.Where("updated_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("updated_at <= ?", *filters.DateTo)
	}
	return query
}
