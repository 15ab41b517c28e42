package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityTask        ActivityType = "TASK"
	ActivityInteractive ActivityType = "INTERACTIVE"
)

type AssignmentType string

const (
	// AssignmentOrdinary is a regular class activity.
	AssignmentOrdinary AssignmentType = "ORDINARY"
	// AssignmentNEMEvaluation is a teacher-only diagnostic instrument. It is
	// never visible in the parents portal and its quiz content is forced to
	// ForTeacherOnly at publication.
	AssignmentNEMEvaluation AssignmentType = "NEM_EVALUATION"
)

type ActivityStatus string

const (
	ActivityDraft     ActivityStatus = "Draft"
	ActivityPublished ActivityStatus = "Published"
	ActivityArchived  ActivityStatus = "Archived"
)

// Activity is an assignment: the container a content aggregate is attached
// to and the unit students submit against.
type Activity struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description    *string        `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Type           ActivityType   `json:"type" gorm:"not null;index" validate:"required,activity_type"`
	AssignmentType AssignmentType `json:"assignment_type" gorm:"default:ORDINARY;index" validate:"omitempty,assignment_type"`
	Status         ActivityStatus `json:"status" gorm:"default:Draft;index" validate:"omitempty,oneof=Draft Published Archived"`

	IsVisibleInParentsPortal bool   `json:"is_visible_in_parents_portal" gorm:"default:true"`
	TargetGroup              string `json:"target_group" gorm:"size:100;index"`

	// InteractiveData is the attached content aggregate, stored as JSONB.
	// Nil for plain tasks.
	InteractiveData *ContentAggregate `json:"interactive_data,omitempty" gorm:"type:jsonb;serializer:json"`

	// Metadata carries free-form authoring context (e.g. the topic a
	// generated aggregate was produced from). map[string]interface{}
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedBy uint           `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Version int `json:"version" gorm:"default:1"`
}

func (Activity) TableName() string {
	return "activities"
}

// IsNEMEvaluation reports whether the activity is a teacher-only diagnostic.
func (a *Activity) IsNEMEvaluation() bool {
	return a.AssignmentType == AssignmentNEMEvaluation
}
