package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/taskfilter"
)

// TaskStore defines the interface for task persistence.
// Tasks are loaded as a full graph: status, assignee and labels are populated.
type TaskStore interface {
	// Create saves a new task with its label set and fills in ID and CreatedAt.
	// The task's status, assignee and labels must already exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the tasks matching filter, ordered by ID.
	// An empty filter returns every task.
	List(ctx context.Context, filter taskfilter.Filter) ([]*domain.Task, error)

	// Update overwrites the task's fields and replaces its label set.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task and its label links.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) TaskStore
}
