package services

import (
	"context"

	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/producer"
	"github.com/aulalink/activity-service/internal/repositories"
	"github.com/aulalink/activity-service/internal/scoring"
)

// ===== REQUEST / RESPONSE DTOS =====

type CreateActivityRequest struct {
	Title          string                   `json:"title" validate:"required,min=1,max=200"`
	Description    *string                  `json:"description" validate:"omitempty,max=1000"`
	Type           models.ActivityType      `json:"type" validate:"required,activity_type"`
	AssignmentType models.AssignmentType    `json:"assignment_type" validate:"omitempty,assignment_type"`
	TargetGroup    string                   `json:"target_group" validate:"max=100"`
	VisibleInParentsPortal *bool            `json:"is_visible_in_parents_portal"`
	InteractiveData *models.ContentAggregate `json:"interactive_data"`
}

type UpdateActivityRequest struct {
	Title           *string                  `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string                  `json:"description" validate:"omitempty,max=1000"`
	TargetGroup     *string                  `json:"target_group" validate:"omitempty,max=100"`
	VisibleInParentsPortal *bool             `json:"is_visible_in_parents_portal"`
	InteractiveData *models.ContentAggregate `json:"interactive_data"`
}

type SubmitResponsesRequest struct {
	ActivityID uint               `json:"activity_id" validate:"required"`
	Responses  models.ResponseSet `json:"responses" validate:"required"`
}

type RegisterEvaluationRequest struct {
	ActivityID uint               `json:"activity_id" validate:"required"`
	StudentID  uint               `json:"student_id" validate:"required"`
	Judgments  models.JudgmentSet `json:"judgments" validate:"required"`
}

type SubmissionResponse struct {
	Record *models.SubmissionRecord `json:"record"`
	Result scoring.Result           `json:"result"`
}

// PublishPolicy makes the implicit defaults of the publication gate
// explicit: what newly published activities look like before the
// assignment-type overrides are applied. The teacher-only-evaluation
// override is a hard rule layered on top, never a default.
type PublishPolicy struct {
	DefaultVisibleInParentsPortal bool
	DefaultTargetGroup            string
}

// DefaultPublishPolicy matches the portal-wide defaults.
func DefaultPublishPolicy() PublishPolicy {
	return PublishPolicy{
		DefaultVisibleInParentsPortal: true,
		DefaultTargetGroup:            "all",
	}
}

// ===== SERVICE INTERFACES =====

// ActivityService owns the activity lifecycle: authoring, the publication
// gate, and content upgrades from stripped to full form.
type ActivityService interface {
	Create(ctx context.Context, req *CreateActivityRequest, creatorID uint) (*models.Activity, error)
	GetByID(ctx context.Context, id uint) (*models.Activity, error)
	// GetByIDWithContent upgrades the activity to its full form. viewerID
	// scopes the stale-load guard to one reader; empty disables it.
	GetByIDWithContent(ctx context.Context, viewerID string, id uint) (*models.Activity, error)
	Update(ctx context.Context, id uint, req *UpdateActivityRequest) (*models.Activity, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.ActivityFilters) ([]*models.Activity, int64, error)

	Publish(ctx context.Context, id uint) (*models.Activity, error)
	Archive(ctx context.Context, id uint) error

	// GenerateContent asks the content producer for an aggregate and attaches
	// it to the activity. Generated content is untrusted: it is validated like
	// hand-authored content here and passes the same gate at publication.
	GenerateContent(ctx context.Context, id uint, req producer.Request) (*models.Activity, error)
}

// SubmissionService owns the submission state machine and scoring.
type SubmissionService interface {
	SubmitResponses(ctx context.Context, req *SubmitResponsesRequest, studentID uint) (*SubmissionResponse, error)
	RegisterEvaluation(ctx context.Context, req *RegisterEvaluationRequest, teacherID uint) (*SubmissionResponse, error)
	GetSubmission(ctx context.Context, activityID, studentID uint) (*SubmissionResponse, error)
	ListByActivity(ctx context.Context, activityID uint, filters repositories.SubmissionFilters) ([]*models.SubmissionRecord, int64, error)
	Rescore(ctx context.Context, activityID, studentID uint) (*SubmissionResponse, error)
}

// ExportService renders gradebook exports.
type ExportService interface {
	ExportGradebook(ctx context.Context, activityID uint) ([]byte, error)
}

// ServiceManager bundles the services for handler wiring.
type ServiceManager interface {
	Activity() ActivityService
	Submission() SubmissionService
	Export() ExportService
}
