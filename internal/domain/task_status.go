package domain

import (
	"errors"
	"time"
)

// Task status validation errors
var (
	ErrEmptyStatusName = errors.New("task status name cannot be empty")
	ErrEmptyStatusSlug = errors.New("task status slug cannot be empty")
)

// TaskStatus is a workflow state a task can be in, such as "draft" or "published".
// Slug is the stable external key; clients never see the surrogate ID in task payloads.
type TaskStatus struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks that the status has a name and a slug.
func (s *TaskStatus) Validate() error {
	if s.Name == "" {
		return NewValidationError("name", "is required", ErrEmptyStatusName)
	}
	if s.Slug == "" {
		return NewValidationError("slug", "is required", ErrEmptyStatusSlug)
	}
	return nil
}
