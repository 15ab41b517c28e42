package models

import (
	"time"

	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	SubmissionNotStarted SubmissionStatus = "NOT_STARTED"
	SubmissionInProgress SubmissionStatus = "IN_PROGRESS"
	SubmissionCompleted  SubmissionStatus = "COMPLETED"
)

// Response is a student's answer to one zone or question. Which field is
// meaningful depends on the element's type.
type Response struct {
	// SelectedOption is the chosen option index for a quiz question.
	SelectedOption *int `json:"selected_option,omitempty"`
	// Text is the typed value for a TEXT_INPUT zone.
	Text string `json:"text,omitempty"`
	// DroppedItemID is the draggable item placed on a DROP_ZONE.
	DroppedItemID string `json:"dropped_item_id,omitempty"`
	// Selected is the toggle state of a SELECTABLE zone.
	Selected bool `json:"selected,omitempty"`
	// ConnectedTo lists target zone ids a MATCH_SOURCE was connected to.
	ConnectedTo []string `json:"connected_to,omitempty"`
}

// ResponseSet maps zone/question ids to the student's responses.
type ResponseSet map[string]Response

// JudgmentSet maps question ids to the teacher's binary judgment for a
// NEM evaluation: true = logrado, false = no logrado. An absent entry means
// the question has not been judged yet.
type JudgmentSet map[string]bool

// SubmissionRecord is one student's standing against one activity. Created
// on first interaction, mutated on resubmission or regrading, never
// implicitly deleted.
type SubmissionRecord struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	StudentID  uint `json:"student_id" gorm:"not null;index:idx_submission_student_activity,unique"`
	ActivityID uint `json:"activity_id" gorm:"not null;index:idx_submission_student_activity,unique"`

	Status    SubmissionStatus `json:"status" gorm:"default:NOT_STARTED" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
	Responses ResponseSet      `json:"responses,omitempty" gorm:"type:jsonb;serializer:json"`
	Judgments JudgmentSet      `json:"judgments,omitempty" gorm:"type:jsonb;serializer:json"`

	Score     int  `json:"score" gorm:"default:0"`
	Completed bool `json:"completed" gorm:"default:false"`

	// ScoreDetail is the per-item breakdown of the latest computed score.
	// scoring.Breakdown
	ScoreDetail datatypes.JSON `json:"score_detail,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SubmissionRecord) TableName() string {
	return "submission_records"
}
