package events

import (
	"time"

	"github.com/google/uuid"
)

// NewEventID returns a fresh identifier for an emitted event.
func NewEventID() string { return uuid.NewString() }

type TaskEvent struct {
	EventID   string    `json:"event_id"`
	TaskID    int64     `json:"task_id"`
	Title     string    `json:"title,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type AnalysisCompletedEvent struct {
	EventID    string    `json:"event_id"`
	Strategy   string    `json:"strategy"`
	TotalTasks int       `json:"total_tasks"`
	TopScore   float64   `json:"top_score,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
