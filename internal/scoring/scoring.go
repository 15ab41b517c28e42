// Package scoring turns completed submissions into numeric results. Every
// entry point is a pure function of (aggregate, submission): recomputing the
// same pair always yields the same score, so results are recomputed on
// demand rather than cached destructively.
//
// Scores are integers in [0, 10], rounded half-up. Scoring never blocks and
// never throws for bad content: unresolvable items default to incorrect so a
// gradebook is never empty.
package scoring

import (
	"errors"
	"math"

	"github.com/aulalink/activity-service/internal/models"
)

// MaxScore is the top of the grading scale.
const MaxScore = 10

// ErrStrippedContent is returned when scoring is attempted against a
// stripped aggregate. Callers must upgrade to the full form first.
var ErrStrippedContent = errors.New("content aggregate is stripped, full load required before scoring")

// ErrNoContent is returned when the activity carries no interactive data.
var ErrNoContent = errors.New("activity has no interactive content")

// ItemResult records how a single zone or question scored.
type ItemResult struct {
	ID      string `json:"id"`
	Correct bool   `json:"correct"`
	Points  int    `json:"points"`
	// StaleReference marks an item whose answer key pointed at a removed
	// draggable item or an unpaired match label. Such items always score
	// incorrect.
	StaleReference bool `json:"stale_reference,omitempty"`
}

// Breakdown is the per-item detail behind a Result.
type Breakdown []ItemResult

// Result is the outcome of scoring one submission.
type Result struct {
	Score   int       `json:"score"`
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Items   Breakdown `json:"items,omitempty"`

	// Inconsistent is set when the submission referenced more items than the
	// aggregate currently has (content shrank after grading began). The
	// engine clamps to the current total and proceeds; callers log it.
	Inconsistent bool `json:"inconsistent,omitempty"`
}

// roundHalfUp scales a correct/total ratio onto [0, MaxScore] with
// round-half-up semantics.
func roundHalfUp(ratio float64) int {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Floor(ratio*MaxScore + 0.5))
}

// Score grades a submission against an aggregate, routing on the content
// kind. The switch is exhaustive: a new content kind must be wired here
// before it can be graded.
func Score(agg *models.ContentAggregate, sub *models.SubmissionRecord) (Result, error) {
	if agg == nil {
		return Result{}, ErrNoContent
	}
	if agg.IsStripped() {
		return Result{}, ErrStrippedContent
	}

	switch agg.Kind {
	case models.ContentQuiz:
		if agg.ForTeacherOnly {
			return ScoreEvaluation(agg.Questions, sub.Judgments), nil
		}
		return ScoreQuiz(agg.Questions, sub.Responses), nil
	case models.ContentWorksheet:
		return ScoreWorksheet(agg, sub.Responses), nil
	}
	return Result{}, ErrNoContent
}
