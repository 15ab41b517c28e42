package errors

import (
	"errors"
	"fmt"
)

// Publication failure reasons. These are stable codes surfaced to the caller
// so the authoring UI can name the unmet condition; the gate never coerces
// content into validity.
const (
	ReasonEmptyQuiz    = "empty_quiz"
	ReasonMissingImage = "missing_image"
)

// PublicationError blocks attaching a content aggregate to an activity.
type PublicationError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (pe *PublicationError) Error() string {
	return fmt.Sprintf("publication blocked (%s): %s", pe.Reason, pe.Message)
}

// NewPublicationError creates a publication error with a stable reason code.
func NewPublicationError(reason, message string) *PublicationError {
	return &PublicationError{Reason: reason, Message: message}
}

// IsPublicationError reports whether err is a publication failure with the
// given reason. An empty reason matches any publication failure.
func IsPublicationError(err error, reason string) bool {
	var pe *PublicationError
	if !errors.As(err, &pe) {
		return false
	}
	return reason == "" || pe.Reason == reason
}
