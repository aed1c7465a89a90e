package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// LabelStore defines the interface for label persistence.
type LabelStore interface {
	// Create saves a new label and fills in its ID and CreatedAt.
	// Returns ErrNameExists if the name is taken.
	Create(ctx context.Context, label *domain.Label) error

	// GetByID returns ErrLabelNotFound if the label does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Label, error)

	// GetByIDs returns the labels that exist among ids, ordered by ID.
	// Missing IDs are not an error here; callers compare the result against ids.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Label, error)

	// List returns all labels ordered by ID.
	List(ctx context.Context) ([]*domain.Label, error)

	// Update overwrites the name of an existing label.
	Update(ctx context.Context, label *domain.Label) error

	// Delete removes a label by ID. Tasks carrying the label lose it;
	// the tasks themselves are kept.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) LabelStore
}
