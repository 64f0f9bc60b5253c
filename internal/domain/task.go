package domain

import (
	"context"
	"strings"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParseStatus converts a string to a Status. The second return value reports
// whether the input named a known status; callers decide between falling back
// to the default and rejecting the input.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(s)) {
	case StatusPending:
		return StatusPending, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// ParsePriority converts a string to a Priority, reporting whether the input
// named a known priority.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(s)) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

// Task is a single to-do item owned by exactly one user. Ownership never
// transfers; every read and mutation is gated on UserID matching the caller.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilter narrows ListByOwner results. Nil fields mean "no filter".
type TaskFilter struct {
	Status   *Status
	Priority *Priority
}

// TaskRepository defines persistence operations for tasks. ListByOwner and
// Search return tasks newest-created-first.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id int64) (*Task, error)
	ListByOwner(ctx context.Context, ownerID int64, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, ownerID int64, query string) ([]Task, error)
}
