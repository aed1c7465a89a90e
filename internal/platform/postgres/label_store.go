package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
)

const labelColumns = `id, name, created_at`

// PostgresLabelStore implements store.LabelStore.
type PostgresLabelStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLabelStore creates a label store. If logger is nil, a default logger will be used.
func NewPostgresLabelStore(db store.DBTX, logger *slog.Logger) *PostgresLabelStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLabelStore{
		db:     db,
		logger: logger.With(slog.String("component", "label_store")),
	}
}

var _ store.LabelStore = (*PostgresLabelStore)(nil)

// WithTx implements store.LabelStore.WithTx
func (s *PostgresLabelStore) WithTx(tx *sql.Tx) store.LabelStore {
	return &PostgresLabelStore{db: tx, logger: s.logger}
}

func scanLabel(row scanner) (*domain.Label, error) {
	var l domain.Label
	if err := row.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create implements store.LabelStore.Create
func (s *PostgresLabelStore) Create(ctx context.Context, label *domain.Label) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := label.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO labels (name) VALUES ($1) RETURNING id, created_at`
	if err := s.db.QueryRowContext(ctx, query, label.Name).Scan(&label.ID, &label.CreatedAt); err != nil {
		err = MapError(err)
		if !store.IsDuplicateError(err) {
			log.Error("failed to create label", slog.String("error", err.Error()))
		}
		return err
	}

	log.Info("label created successfully", slog.Int64("label_id", label.ID))
	return nil
}

// GetByID implements store.LabelStore.GetByID
func (s *PostgresLabelStore) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels WHERE id = $1`
	label, err := scanLabel(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLabelNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get label by ID",
			slog.String("error", err.Error()),
			slog.Int64("label_id", id))
		return nil, err
	}
	return label, nil
}

// GetByIDs implements store.LabelStore.GetByIDs
func (s *PostgresLabelStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Label, error) {
	if len(ids) == 0 {
		return []*domain.Label{}, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT ` + labelColumns + ` FROM labels WHERE id IN (` + placeholders(1, len(ids)) + `) ORDER BY id`
	return s.query(ctx, query, args...)
}

// List implements store.LabelStore.List
func (s *PostgresLabelStore) List(ctx context.Context) ([]*domain.Label, error) {
	return s.query(ctx, `SELECT `+labelColumns+` FROM labels ORDER BY id`)
}

func (s *PostgresLabelStore) query(ctx context.Context, query string, args ...any) ([]*domain.Label, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query labels", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	labels := []*domain.Label{}
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// Update implements store.LabelStore.Update
func (s *PostgresLabelStore) Update(ctx context.Context, label *domain.Label) error {
	if err := label.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE labels SET name = $1 WHERE id = $2`, label.Name, label.ID)
	if err != nil {
		err = MapError(err)
		if !store.IsDuplicateError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to update label",
				slog.String("error", err.Error()),
				slog.Int64("label_id", label.ID))
		}
		return err
	}
	return CheckRowsAffected(result, store.ErrLabelNotFound)
}

// Delete implements store.LabelStore.Delete
// task_labels rows referencing the label go with it (ON DELETE CASCADE).
func (s *PostgresLabelStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete label",
			slog.String("error", err.Error()),
			slog.Int64("label_id", id))
		return MapDeleteError(err)
	}
	if err := CheckRowsAffected(result, store.ErrLabelNotFound); err != nil {
		return err
	}

	log.Info("label deleted successfully", slog.Int64("label_id", id))
	return nil
}
