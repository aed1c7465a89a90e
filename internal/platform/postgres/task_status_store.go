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

const taskStatusColumns = `id, name, slug, created_at`

// PostgresTaskStatusStore implements store.TaskStatusStore.
type PostgresTaskStatusStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStatusStore creates a task status store. If logger is nil, a default logger will be used.
func NewPostgresTaskStatusStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStatusStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStatusStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_status_store")),
	}
}

var _ store.TaskStatusStore = (*PostgresTaskStatusStore)(nil)

// WithTx implements store.TaskStatusStore.WithTx
func (s *PostgresTaskStatusStore) WithTx(tx *sql.Tx) store.TaskStatusStore {
	return &PostgresTaskStatusStore{db: tx, logger: s.logger}
}

func scanTaskStatus(row scanner) (*domain.TaskStatus, error) {
	var ts domain.TaskStatus
	if err := row.Scan(&ts.ID, &ts.Name, &ts.Slug, &ts.CreatedAt); err != nil {
		return nil, err
	}
	return &ts, nil
}

// Create implements store.TaskStatusStore.Create
func (s *PostgresTaskStatusStore) Create(ctx context.Context, status *domain.TaskStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := status.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO task_statuses (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := s.db.QueryRowContext(ctx, query, status.Name, status.Slug).
		Scan(&status.ID, &status.CreatedAt); err != nil {
		err = MapError(err)
		if !store.IsDuplicateError(err) {
			log.Error("failed to create task status", slog.String("error", err.Error()))
		}
		return err
	}

	log.Info("task status created successfully",
		slog.Int64("task_status_id", status.ID),
		slog.String("slug", status.Slug))
	return nil
}

// GetByID implements store.TaskStatusStore.GetByID
func (s *PostgresTaskStatusStore) GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	query := `SELECT ` + taskStatusColumns + ` FROM task_statuses WHERE id = $1`
	status, err := scanTaskStatus(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskStatusNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task status by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_status_id", id))
		return nil, err
	}
	return status, nil
}

// GetBySlug implements store.TaskStatusStore.GetBySlug
func (s *PostgresTaskStatusStore) GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error) {
	query := `SELECT ` + taskStatusColumns + ` FROM task_statuses WHERE slug = $1`
	status, err := scanTaskStatus(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskStatusNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task status by slug",
			slog.String("error", err.Error()),
			slog.String("slug", slug))
		return nil, err
	}
	return status, nil
}

// List implements store.TaskStatusStore.List
func (s *PostgresTaskStatusStore) List(ctx context.Context) ([]*domain.TaskStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+taskStatusColumns+` FROM task_statuses ORDER BY id`)
	if err != nil {
		log.Error("failed to query task statuses", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	statuses := []*domain.TaskStatus{}
	for rows.Next() {
		status, err := scanTaskStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

// Update implements store.TaskStatusStore.Update
func (s *PostgresTaskStatusStore) Update(ctx context.Context, status *domain.TaskStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := status.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE task_statuses SET name = $1, slug = $2 WHERE id = $3`,
		status.Name, status.Slug, status.ID)
	if err != nil {
		err = MapError(err)
		if !store.IsDuplicateError(err) {
			log.Error("failed to update task status",
				slog.String("error", err.Error()),
				slog.Int64("task_status_id", status.ID))
		}
		return err
	}
	return CheckRowsAffected(result, store.ErrTaskStatusNotFound)
}

// Delete implements store.TaskStatusStore.Delete
// Statuses referenced by tasks are protected by ON DELETE RESTRICT.
func (s *PostgresTaskStatusStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM task_statuses WHERE id = $1`, id)
	if err != nil {
		err = MapDeleteError(err)
		if !errors.Is(err, store.ErrInUse) {
			log.Error("failed to delete task status",
				slog.String("error", err.Error()),
				slog.Int64("task_status_id", id))
		}
		return err
	}
	if err := CheckRowsAffected(result, store.ErrTaskStatusNotFound); err != nil {
		return err
	}

	log.Info("task status deleted successfully", slog.Int64("task_status_id", id))
	return nil
}
