package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/aulalink/activity-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type ActivityFilters struct {
	Type           *models.ActivityType   `json:"type"`
	AssignmentType *models.AssignmentType `json:"assignment_type"`
	Status         *models.ActivityStatus `json:"status"`
	TargetGroup    *string                `json:"target_group"`
	VisibleToParents *bool                `json:"visible_to_parents"`
	CreatedBy      *uint                  `json:"created_by"`
	DateFrom       *time.Time             `json:"date_from"`
	DateTo         *time.Time             `json:"date_to"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	SortBy         string                 `json:"sort_by"`    // "created_at", "title"
	SortOrder      string                 `json:"sort_order"` // "asc", "desc"
}

type SubmissionFilters struct {
	Status    *models.SubmissionStatus `json:"status"`
	StudentID *uint                    `json:"student_id"`
	Completed *bool                    `json:"completed"`
	DateFrom  *time.Time               `json:"date_from"`
	DateTo    *time.Time               `json:"date_to"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

// ActivityRepository persists activities and their content aggregates.
// GetByID returns activities with stripped interactive data so list views
// stay light; GetByIDWithContent returns the full aggregate and is the only
// read that may precede grading or editing.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uint) (*models.Activity, error)
	GetByIDWithContent(ctx context.Context, id uint) (*models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uint) error // Soft delete

	List(ctx context.Context, filters ActivityFilters) ([]*models.Activity, int64, error)
	GetByGroup(ctx context.Context, targetGroup string, filters ActivityFilters) ([]*models.Activity, int64, error)

	UpdateStatus(ctx context.Context, id uint, status models.ActivityStatus) error
	HasSubmissions(ctx context.Context, id uint) (bool, error)
}

// SubmissionRepository persists per-student submission records.
type SubmissionRepository interface {
	Upsert(ctx context.Context, record *models.SubmissionRecord) error
	GetByStudentAndActivity(ctx context.Context, studentID, activityID uint) (*models.SubmissionRecord, error)
	ListByActivity(ctx context.Context, activityID uint, filters SubmissionFilters) ([]*models.SubmissionRecord, int64, error)
	ListByStudent(ctx context.Context, studentID uint, filters SubmissionFilters) ([]*models.SubmissionRecord, int64, error)
}

// Repository aggregates the per-entity repositories behind one handle.
type Repository interface {
	Activity() ActivityRepository
	Submission() SubmissionRepository
}

// TransactionRepository is implemented by repositories that can scope their
// operations to a transaction.
type TransactionRepository interface {
	Repository
	Begin(ctx context.Context) (Repository, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// IsNotFoundError reports whether err means the record does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
