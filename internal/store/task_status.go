package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// TaskStatusStore defines the interface for task status persistence.
type TaskStatusStore interface {
	// Create saves a new status and fills in its ID and CreatedAt.
	// Returns ErrSlugExists or ErrNameExists on a uniqueness violation.
	Create(ctx context.Context, status *domain.TaskStatus) error

	// GetByID returns ErrTaskStatusNotFound if the status does not exist.
	GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error)

	// GetBySlug looks a status up by its external key.
	// Returns ErrTaskStatusNotFound if no status has the slug.
	GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error)

	// List returns all statuses ordered by ID.
	List(ctx context.Context) ([]*domain.TaskStatus, error)

	// Update overwrites name and slug of an existing status.
	Update(ctx context.Context, status *domain.TaskStatus) error

	// Delete removes a status by ID.
	// Returns ErrInUse if any task is still in that status.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) TaskStatusStore
}
