package store

import (
	"context"
	"time"
)

// Task is a persisted to-do task. Dependencies holds the ids of tasks
// this task depends on; it is populated by ListTaskRecords and left nil
// by the single-row getters.
type Task struct {
	ID             int64     `json:"task_id"`
	Title          string    `json:"title"`
	DueDate        time.Time `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	Importance     int       `json:"importance"`
	Dependencies   []int64   `json:"dependencies,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TaskFilter struct {
	DueBefore     *time.Time
	MinImportance int
	Limit         int
	Offset        int
}

// Dependency is a directed edge: TaskID depends on DependsOn.
type Dependency struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	DependsOn int64     `json:"depends_on"`
	CreatedAt time.Time `json:"created_at"`
}

type Stats struct {
	TotalTasks        int     `json:"total_tasks"`
	TotalDependencies int     `json:"total_dependencies"`
	OverdueTasks      int     `json:"overdue_tasks"`
	AvgEstimatedHours float64 `json:"avg_estimated_hours"`
}

type Store interface {
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error

	// ListTaskRecords returns every task with its dependency ids
	// populated, ready to hand to the scorer.
	ListTaskRecords(ctx context.Context) ([]*Task, error)

	CreateDependency(ctx context.Context, dep *Dependency) error
	DeleteDependency(ctx context.Context, id int64) error
	ListDependenciesForTask(ctx context.Context, taskID int64) ([]*Dependency, error)
	ListDependencies(ctx context.Context) ([]*Dependency, error)

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}
