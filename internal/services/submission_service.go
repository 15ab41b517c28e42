package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aulalink/activity-service/internal/events"
	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/repositories"
	"github.com/aulalink/activity-service/internal/scoring"
	"github.com/aulalink/activity-service/internal/validator"
)

type submissionService struct {
	repo      repositories.Repository
	loader    *ContentLoader
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSubmissionService(
	repo repositories.Repository,
	loader *ContentLoader,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) SubmissionService {
	return &submissionService{
		repo:      repo,
		loader:    loader,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// SubmitResponses records a student's responses and scores them. For
// student-facing content COMPLETED is terminal: resubmitting against a
// completed record does not reopen grading.
func (s *submissionService) SubmitResponses(ctx context.Context, req *SubmitResponsesRequest, studentID uint) (*SubmissionResponse, error) {
	s.logger.Info("Submitting responses",
		"activity_id", req.ActivityID,
		"student_id", studentID,
		"responses_count", len(req.Responses))

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	activity, err := s.loader.FullActivity(ctx, req.ActivityID)
	if err != nil {
		// Fail closed: never grade against absent data.
		return nil, err
	}
	if activity.InteractiveData == nil {
		return nil, ErrActivityNoContent
	}
	if activity.InteractiveData.ForTeacherOnly || activity.IsNEMEvaluation() {
		return nil, ErrEvaluationForStudent
	}

	record, err := s.getOrCreateRecord(ctx, studentID, req.ActivityID)
	if err != nil {
		return nil, err
	}
	if record.Status == models.SubmissionCompleted {
		return nil, ErrSubmissionCompleted
	}

	record.Responses = req.Responses
	record.Status = models.SubmissionCompleted
	record.Completed = true

	result, err := s.scoreAndStore(ctx, activity, record)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishActivityEvent(ctx,
		events.NewSubmissionCompletedEvent(activity, studentID, result.Score)); err != nil {
		s.logger.Error("Failed to publish submission event",
			"activity_id", req.ActivityID, "student_id", studentID, "error", err)
	}

	s.logger.Info("Responses submitted and scored",
		"activity_id", req.ActivityID,
		"student_id", studentID,
		"score", result.Score)

	return &SubmissionResponse{Record: record, Result: result}, nil
}

// RegisterEvaluation records a teacher's per-question judgments for a NEM
// evaluation and computes its score. Unlike student submissions the record
// is re-enterable: it reaches COMPLETED only through this explicit register
// action and may be registered again to correct judgments.
func (s *submissionService) RegisterEvaluation(ctx context.Context, req *RegisterEvaluationRequest, teacherID uint) (*SubmissionResponse, error) {
	s.logger.Info("Registering evaluation",
		"activity_id", req.ActivityID,
		"student_id", req.StudentID,
		"teacher_id", teacherID,
		"judged_count", len(req.Judgments))

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	activity, err := s.loader.FullActivity(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity.InteractiveData == nil {
		return nil, ErrActivityNoContent
	}
	if !activity.IsNEMEvaluation() && !activity.InteractiveData.ForTeacherOnly {
		return nil, ErrNotEvaluation
	}

	record, err := s.getOrCreateRecord(ctx, req.StudentID, req.ActivityID)
	if err != nil {
		return nil, err
	}

	record.Judgments = req.Judgments
	record.Status = models.SubmissionCompleted
	record.Completed = true

	result, err := s.scoreAndStore(ctx, activity, record)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishActivityEvent(ctx,
		events.NewEvaluationRegisteredEvent(activity, req.StudentID, teacherID,
			result.Score, len(req.Judgments), result.Total)); err != nil {
		s.logger.Error("Failed to publish evaluation event",
			"activity_id", req.ActivityID, "student_id", req.StudentID, "error", err)
	}

	s.logger.Info("Evaluation registered",
		"activity_id", req.ActivityID,
		"student_id", req.StudentID,
		"score", result.Score)

	return &SubmissionResponse{Record: record, Result: result}, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, activityID, studentID uint) (*SubmissionResponse, error) {
	record, err := s.repo.Submission().GetByStudentAndActivity(ctx, studentID, activityID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, NewIOError("get submission", err)
	}

	return &SubmissionResponse{
		Record: record,
		Result: scoring.Result{Score: record.Score},
	}, nil
}

func (s *submissionService) ListByActivity(ctx context.Context, activityID uint, filters repositories.SubmissionFilters) ([]*models.SubmissionRecord, int64, error) {
	records, total, err := s.repo.Submission().ListByActivity(ctx, activityID, filters)
	if err != nil {
		return nil, 0, NewIOError("list submissions", err)
	}
	return records, total, nil
}

// Rescore recomputes a stored record against the current aggregate. This is
// the recovery path after content was edited under existing submissions:
// scoring is a pure function of (aggregate, submission), so recomputing is
// always safe and idempotent.
func (s *submissionService) Rescore(ctx context.Context, activityID, studentID uint) (*SubmissionResponse, error) {
	activity, err := s.loader.FullActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.Submission().GetByStudentAndActivity(ctx, studentID, activityID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, NewIOError("get submission", err)
	}

	result, err := s.scoreAndStore(ctx, activity, record)
	if err != nil {
		return nil, err
	}

	return &SubmissionResponse{Record: record, Result: result}, nil
}

// ===== HELPERS =====

func (s *submissionService) getOrCreateRecord(ctx context.Context, studentID, activityID uint) (*models.SubmissionRecord, error) {
	record, err := s.repo.Submission().GetByStudentAndActivity(ctx, studentID, activityID)
	if err == nil {
		return record, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, NewIOError("get submission", err)
	}
	return &models.SubmissionRecord{
		StudentID:  studentID,
		ActivityID: activityID,
		Status:     models.SubmissionInProgress,
	}, nil
}

func (s *submissionService) scoreAndStore(ctx context.Context, activity *models.Activity, record *models.SubmissionRecord) (scoring.Result, error) {
	result, err := scoring.Score(activity.InteractiveData, record)
	if err != nil {
		return scoring.Result{}, err
	}

	if result.Inconsistent {
		// Content shrank after grading began; the engine clamped to the
		// current total and proceeded.
		s.logger.Warn("submission references more items than the aggregate currently has",
			"activity_id", activity.ID,
			"student_id", record.StudentID,
			"total", result.Total)
	}

	record.Score = result.Score
	if detail, err := json.Marshal(result.Items); err == nil {
		record.ScoreDetail = detail
	}

	if err := s.repo.Submission().Upsert(ctx, record); err != nil {
		return scoring.Result{}, NewIOError("store submission", err)
	}
	return result, nil
}
