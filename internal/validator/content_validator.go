package validator

import (
	"fmt"

	apperrors "github.com/aulalink/activity-service/internal/errors"
	"github.com/aulalink/activity-service/internal/models"
)

// ContentValidator handles content-aggregate validation: per-element draft
// rules and the publication gate.
type ContentValidator struct{}

// NewContentValidator creates a new content validator
func NewContentValidator() *ContentValidator {
	return &ContentValidator{}
}

// ValidateQuestion validates a single quiz question.
func (v *ContentValidator) ValidateQuestion(q *models.QuizQuestion) error {
	if q.Text == "" {
		return fmt.Errorf("question text is required")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question must have at least 2 options, got %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct_index %d out of range for %d options", q.CorrectIndex, len(q.Options))
	}
	if q.Points < 1 {
		return fmt.Errorf("question points must be positive")
	}
	return nil
}

// ValidateZone validates a single persisted zone.
func (v *ContentValidator) ValidateZone(z *models.InteractiveZone) error {
	if z.ID == "" {
		return fmt.Errorf("zone id is required")
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"x", z.X}, {"y", z.Y}, {"width", z.Width}, {"height", z.Height},
	} {
		if c.value < 0 || c.value > 100 {
			return fmt.Errorf("zone %s must be a percentage in [0, 100], got %v", c.name, c.value)
		}
	}
	if z.Width <= 0 || z.Height <= 0 {
		return fmt.Errorf("persisted zone must have positive width and height")
	}
	if z.Points < 1 {
		return fmt.Errorf("zone points must be positive")
	}
	if z.IsMatch() && z.MatchID == "" {
		return fmt.Errorf("match zone %s has no match label", z.ID)
	}
	return nil
}

// ValidateAggregate validates the elements of a full aggregate. Empty drafts
// are fine here; emptiness is only rejected at publication.
func (v *ContentValidator) ValidateAggregate(agg *models.ContentAggregate) error {
	if agg == nil {
		return fmt.Errorf("content aggregate is required")
	}
	if agg.IsStripped() {
		return fmt.Errorf("cannot validate a stripped aggregate, full load required")
	}

	switch agg.Kind {
	case models.ContentQuiz:
		for i := range agg.Questions {
			if err := v.ValidateQuestion(&agg.Questions[i]); err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
		}
		return nil
	case models.ContentWorksheet:
		for i := range agg.InteractiveZones {
			if err := v.ValidateZone(&agg.InteractiveZones[i]); err != nil {
				return fmt.Errorf("zone %d: %w", i+1, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported content kind: %s", agg.Kind)
	}
}

// ValidatePublication is the publication gate. It runs after
// ValidateAggregate and enforces the rules that distinguish a publishable
// aggregate from an in-progress draft. Generated content goes through the
// same gate as manually authored content.
func (v *ContentValidator) ValidatePublication(agg *models.ContentAggregate) error {
	if err := v.ValidateAggregate(agg); err != nil {
		return err
	}

	switch agg.Kind {
	case models.ContentQuiz:
		if len(agg.Questions) == 0 {
			return apperrors.NewPublicationError(apperrors.ReasonEmptyQuiz, "quiz has no questions")
		}
		return nil
	case models.ContentWorksheet:
		// An image-less worksheet cannot be graded spatially, regardless of
		// how many zones it has.
		if agg.ImageURL == "" {
			return apperrors.NewPublicationError(apperrors.ReasonMissingImage, "worksheet has no image reference")
		}
		return nil
	default:
		return fmt.Errorf("unsupported content kind: %s", agg.Kind)
	}
}
