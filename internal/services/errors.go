package services

import (
	"errors"
	"fmt"

	apperrors "github.com/aulalink/activity-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Activity specific errors
	ErrActivityNotFound     = errors.New("activity not found")
	ErrActivityNotEditable  = errors.New("activity cannot be edited in current status")
	ErrActivityNoContent    = errors.New("activity has no interactive content")
	ErrActivityNotPublished = errors.New("activity is not published")

	// Content specific errors
	ErrContentStripped   = errors.New("content is stripped - full load required")
	ErrContentLoadFailed = errors.New("failed to load full content")
	ErrStaleContentLoad  = errors.New("content load resolved for a stale activity")

	// Submission specific errors
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrSubmissionCompleted = errors.New("submission already completed")

	// Producer specific errors
	ErrProducerUnavailable = errors.New("content producer is not configured")
	ErrProducerEmptyResult = errors.New("content producer returned no aggregate")

	// Evaluation specific errors
	ErrNotEvaluation        = errors.New("activity is not a teacher-only evaluation")
	ErrEvaluationForStudent = errors.New("teacher-only evaluation cannot be completed by a student")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors
type PublicationError = apperrors.PublicationError

// IOError wraps a persistence or producer failure so callers can tell
// infrastructure trouble from domain conditions. Partial-load IOErrors
// degrade to the stripped shell instead of failing the whole view.
type IOError struct {
	Op  string `json:"op"`
	Err error  `json:"-"`
}

func (ioe *IOError) Error() string {
	return fmt.Sprintf("io failure during %s: %v", ioe.Op, ioe.Err)
}

func (ioe *IOError) Unwrap() error {
	return ioe.Err
}

func NewIOError(op string, err error) *IOError {
	return &IOError{Op: op, Err: err}
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrActivityNotFound) ||
		errors.Is(err, ErrSubmissionNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var pe *apperrors.PublicationError
	return errors.As(err, &pe)
}

// IsIO checks if error represents an infrastructure failure
func IsIO(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrSubmissionCompleted) ||
		errors.Is(err, ErrActivityNotEditable)
}
