package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aulalink/activity-service/internal/events"
	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/producer"
	"github.com/aulalink/activity-service/internal/repositories"
	"github.com/aulalink/activity-service/internal/validator"
)

type activityService struct {
	repo      repositories.Repository
	loader    *ContentLoader
	publisher events.EventPublisher
	producer  producer.ContentProducer
	logger    *slog.Logger
	validator *validator.Validator
	policy    PublishPolicy
}

func NewActivityService(
	repo repositories.Repository,
	loader *ContentLoader,
	publisher events.EventPublisher,
	contentProducer producer.ContentProducer,
	logger *slog.Logger,
	v *validator.Validator,
	policy PublishPolicy,
) ActivityService {
	return &activityService{
		repo:      repo,
		loader:    loader,
		publisher: publisher,
		producer:  contentProducer,
		logger:    logger,
		validator: v,
		policy:    policy,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *activityService) Create(ctx context.Context, req *CreateActivityRequest, creatorID uint) (*models.Activity, error) {
	s.logger.Info("Creating activity", "creator_id", creatorID, "title", req.Title)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.InteractiveData != nil {
		if err := s.validator.Content().ValidateAggregate(req.InteractiveData); err != nil {
			return nil, fmt.Errorf("invalid interactive content: %w", err)
		}
	}

	activity := &models.Activity{
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		AssignmentType: req.AssignmentType,
		Status:         models.ActivityDraft,
		TargetGroup:    req.TargetGroup,
		InteractiveData: req.InteractiveData,
		CreatedBy:      creatorID,
		Version:        1,
	}
	if activity.AssignmentType == "" {
		activity.AssignmentType = models.AssignmentOrdinary
	}
	if activity.TargetGroup == "" {
		activity.TargetGroup = s.policy.DefaultTargetGroup
	}

	activity.IsVisibleInParentsPortal = s.policy.DefaultVisibleInParentsPortal
	if req.VisibleInParentsPortal != nil {
		activity.IsVisibleInParentsPortal = *req.VisibleInParentsPortal
	}
	s.applyAssignmentTypeRules(activity)

	if err := s.repo.Activity().Create(ctx, activity); err != nil {
		return nil, NewIOError("create activity", err)
	}

	s.logger.Info("Activity created successfully", "activity_id", activity.ID)
	return activity, nil
}

func (s *activityService) GetByID(ctx context.Context, id uint) (*models.Activity, error) {
	activity, err := s.repo.Activity().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrActivityNotFound
		}
		return nil, NewIOError("get activity", err)
	}
	return activity, nil
}

// GetByIDWithContent returns the activity upgraded to its full form. On an
// upgrade failure for an activity that does exist, it degrades to the
// stripped shell so list-derived views keep working; the shell is still
// unusable for grading or editing.
func (s *activityService) GetByIDWithContent(ctx context.Context, viewerID string, id uint) (*models.Activity, error) {
	activity, err := s.loader.LoadForViewer(ctx, viewerID, id)
	if err == nil {
		return activity, nil
	}
	if IsIO(err) {
		s.logger.Warn("full content load failed, degrading to stripped shell", "activity_id", id, "error", err)
		return s.GetByID(ctx, id)
	}
	return nil, err
}

func (s *activityService) Update(ctx context.Context, id uint, req *UpdateActivityRequest) (*models.Activity, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Editing always works against the full aggregate, never the shell.
	activity, err := s.loader.FullActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	if activity.Status == models.ActivityArchived {
		return nil, ErrActivityNotEditable
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = req.Description
	}
	if req.TargetGroup != nil {
		activity.TargetGroup = *req.TargetGroup
	}
	if req.VisibleInParentsPortal != nil {
		activity.IsVisibleInParentsPortal = *req.VisibleInParentsPortal
	}
	if req.InteractiveData != nil {
		if err := s.validator.Content().ValidateAggregate(req.InteractiveData); err != nil {
			return nil, fmt.Errorf("invalid interactive content: %w", err)
		}
		activity.InteractiveData = req.InteractiveData
	}
	s.applyAssignmentTypeRules(activity)
	activity.Version++

	if err := s.repo.Activity().Update(ctx, activity); err != nil {
		return nil, NewIOError("update activity", err)
	}

	// Edits invalidate cached content and make previously computed scores
	// stale; they are recomputed on demand from the new aggregate.
	s.loader.Invalidate(ctx, id)

	if hasSubs, err := s.repo.Activity().HasSubmissions(ctx, id); err == nil && hasSubs {
		s.logger.Warn("activity edited after submissions were recorded, existing scores are stale",
			"activity_id", id, "version", activity.Version)
	}

	return activity, nil
}

func (s *activityService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Activity().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrActivityNotFound
		}
		return NewIOError("delete activity", err)
	}
	s.loader.Invalidate(ctx, id)
	return nil
}

func (s *activityService) List(ctx context.Context, filters repositories.ActivityFilters) ([]*models.Activity, int64, error) {
	activities, total, err := s.repo.Activity().List(ctx, filters)
	if err != nil {
		return nil, 0, NewIOError("list activities", err)
	}
	return activities, total, nil
}

// ===== PUBLICATION =====

// Publish runs the publication gate and flips the activity to Published.
// The gate blocks rather than coerces: an empty quiz or an image-less
// worksheet surfaces its specific reason and nothing is auto-inserted.
func (s *activityService) Publish(ctx context.Context, id uint) (*models.Activity, error) {
	activity, err := s.loader.FullActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	if activity.Type == models.ActivityInteractive || activity.InteractiveData != nil {
		if activity.InteractiveData == nil {
			return nil, ErrActivityNoContent
		}
		if err := s.validator.Content().ValidatePublication(activity.InteractiveData); err != nil {
			return nil, err
		}
	}

	s.applyAssignmentTypeRules(activity)
	activity.Status = models.ActivityPublished

	if err := s.repo.Activity().Update(ctx, activity); err != nil {
		return nil, NewIOError("publish activity", err)
	}
	s.loader.Invalidate(ctx, id)

	if err := s.publisher.PublishActivityEvent(ctx, events.NewActivityPublishedEvent(activity)); err != nil {
		s.logger.Error("Failed to publish activity event", "activity_id", id, "error", err)
	}

	s.logger.Info("Activity published", "activity_id", id, "assignment_type", activity.AssignmentType)
	return activity, nil
}

func (s *activityService) Archive(ctx context.Context, id uint) error {
	if err := s.repo.Activity().UpdateStatus(ctx, id, models.ActivityArchived); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrActivityNotFound
		}
		return NewIOError("archive activity", err)
	}
	s.loader.Invalidate(ctx, id)
	return nil
}

// ===== GENERATED CONTENT =====

// GenerateContent produces an aggregate for the activity's topic and attaches
// it. The producer is an opaque collaborator: nothing it returns is trusted,
// so its output goes through the same element validation as hand-authored
// drafts and later through the same publication gate.
func (s *activityService) GenerateContent(ctx context.Context, id uint, req producer.Request) (*models.Activity, error) {
	if s.producer == nil {
		return nil, ErrProducerUnavailable
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	activity, err := s.loader.FullActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity.Status == models.ActivityArchived {
		return nil, ErrActivityNotEditable
	}

	s.logger.Info("Generating content", "activity_id", id, "kind", req.Kind, "topic", req.Topic)

	agg, err := s.producer.Produce(ctx, req)
	if err != nil {
		return nil, NewIOError("generate content", err)
	}
	if agg == nil {
		return nil, ErrProducerEmptyResult
	}
	if err := s.validator.Content().ValidateAggregate(agg); err != nil {
		return nil, fmt.Errorf("generated content rejected: %w", err)
	}

	activity.InteractiveData = agg
	s.applyAssignmentTypeRules(activity)
	activity.Version++

	if meta, err := json.Marshal(map[string]interface{}{
		"generated_from": req.Topic,
		"generated_kind": req.Kind,
	}); err == nil {
		activity.Metadata = meta
	}

	if err := s.repo.Activity().Update(ctx, activity); err != nil {
		return nil, NewIOError("store generated content", err)
	}
	s.loader.Invalidate(ctx, id)

	s.logger.Info("Generated content attached", "activity_id", id, "version", activity.Version)
	return activity, nil
}

// applyAssignmentTypeRules enforces the hard rules tied to the assignment
// type. A NEM evaluation is a teacher-only diagnostic: it is never visible
// in the parents portal and its quiz is forced to ForTeacherOnly, whatever
// the caller supplied. This is an override, not a default.
func (s *activityService) applyAssignmentTypeRules(activity *models.Activity) {
	if !activity.IsNEMEvaluation() {
		return
	}
	activity.IsVisibleInParentsPortal = false
	if activity.InteractiveData != nil && activity.InteractiveData.Kind == models.ContentQuiz {
		activity.InteractiveData.ForTeacherOnly = true
	}
}
