package domain

import (
	"errors"
	"math"
	"time"
)

// Task validation errors
var (
	ErrEmptyTaskName = errors.New("task name cannot be empty")
	ErrTaskNoStatus  = errors.New("task must have a status")
	ErrTaskIndex     = errors.New("task index out of range")
)

// Task index bounds, matching the INTEGER column it is stored in.
const (
	MinTaskIndex = math.MinInt32
	MaxTaskIndex = math.MaxInt32
)

// Task is a unit of work. It always has exactly one status, at most one assignee,
// and any number of distinct labels.
type Task struct {
	ID          int64
	Name        string
	Index       *int
	Description *string
	Status      *TaskStatus
	Assignee    *User
	Labels      LabelSet
	CreatedAt   time.Time
}

// Validate checks the invariants a task must satisfy before it is persisted.
func (t *Task) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "is required", ErrEmptyTaskName)
	}
	if t.Status == nil {
		return NewValidationError("taskStatus", "is required", ErrTaskNoStatus)
	}
	if t.Index != nil {
		return ValidateTaskIndex(*t.Index)
	}
	return nil
}

// ValidateTaskIndex checks that index fits between MinTaskIndex and MaxTaskIndex.
func ValidateTaskIndex(index int) error {
	if index < MinTaskIndex || index > MaxTaskIndex {
		return NewValidationError("index", "is out of range", ErrTaskIndex)
	}
	return nil
}

// AssigneeID returns the assignee's ID, or nil when the task is unassigned.
func (t *Task) AssigneeID() *int64 {
	if t.Assignee == nil {
		return nil
	}
	id := t.Assignee.ID
	return &id
}

// HasLabel reports whether the task carries the label with the given ID.
func (t *Task) HasLabel(id int64) bool {
	return t.Labels.Contains(id)
}
