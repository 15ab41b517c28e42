package events

import (
	"time"

	"github.com/aulalink/activity-service/internal/models"
	"github.com/google/uuid"
)

// EventType represents different types of activity events
type EventType string

const (
	// Activity lifecycle events
	EventActivityPublished EventType = "activity.published"
	EventActivityArchived  EventType = "activity.archived"

	// Submission events
	EventSubmissionCompleted EventType = "submission.completed"

	// NEM evaluation events
	EventEvaluationRegistered EventType = "evaluation.registered"
)

// ActivityEvent is the base event structure for all activity events
type ActivityEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ActivityPublishedEvent struct {
	ActivityID     uint                  `json:"activity_id"`
	Title          string                `json:"title"`
	ContentKind    models.ContentKind    `json:"content_kind"`
	AssignmentType models.AssignmentType `json:"assignment_type"`
	TargetGroup    string                `json:"target_group"`
	CreatorID      uint                  `json:"creator_id"`
}

type SubmissionCompletedEvent struct {
	ActivityID  uint      `json:"activity_id"`
	Title       string    `json:"title"`
	StudentID   uint      `json:"student_id"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

type EvaluationRegisteredEvent struct {
	ActivityID   uint      `json:"activity_id"`
	Title        string    `json:"title"`
	StudentID    uint      `json:"student_id"`
	TeacherID    uint      `json:"teacher_id"`
	Score        int       `json:"score"`
	JudgedCount  int       `json:"judged_count"`
	TotalCount   int       `json:"total_count"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Event factory functions

func NewActivityPublishedEvent(activity *models.Activity) *ActivityEvent {
	data := ActivityPublishedEvent{
		ActivityID:     activity.ID,
		Title:          activity.Title,
		AssignmentType: activity.AssignmentType,
		TargetGroup:    activity.TargetGroup,
		CreatorID:      activity.CreatedBy,
	}
	if activity.InteractiveData != nil {
		data.ContentKind = activity.InteractiveData.Kind
	}
	return newEvent(EventActivityPublished, data)
}

func NewSubmissionCompletedEvent(activity *models.Activity, studentID uint, score int) *ActivityEvent {
	return newEvent(EventSubmissionCompleted, SubmissionCompletedEvent{
		ActivityID:  activity.ID,
		Title:       activity.Title,
		StudentID:   studentID,
		Score:       score,
		CompletedAt: time.Now(),
	})
}

func NewEvaluationRegisteredEvent(activity *models.Activity, studentID, teacherID uint, score, judged, total int) *ActivityEvent {
	return newEvent(EventEvaluationRegistered, EvaluationRegisteredEvent{
		ActivityID:   activity.ID,
		Title:        activity.Title,
		StudentID:    studentID,
		TeacherID:    teacherID,
		Score:        score,
		JudgedCount:  judged,
		TotalCount:   total,
		RegisteredAt: time.Now(),
	})
}

func newEvent(eventType EventType, data interface{}) *ActivityEvent {
	return &ActivityEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "activity-service",
		Version:   "1.0",
		Data:      data,
	}
}
