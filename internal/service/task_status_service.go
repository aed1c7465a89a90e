package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/patch"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
)

// TaskStatusService provides task status operations.
type TaskStatusService interface {
	List(ctx context.Context) ([]TaskStatusView, error)
	Get(ctx context.Context, id int64) (TaskStatusView, error)
	Create(ctx context.Context, in TaskStatusCreate) (TaskStatusView, error)
	Update(ctx context.Context, id int64, in TaskStatusUpdate) (TaskStatusView, error)

	// Delete removes a status. A status that tasks are still in cannot be deleted.
	Delete(ctx context.Context, id int64) error
}

// TaskStatusServiceImpl implements the TaskStatusService interface
type TaskStatusServiceImpl struct {
	db       *sql.DB
	statuses store.TaskStatusStore
	logger   *slog.Logger
}

// NewTaskStatusService creates a new TaskStatusService
func NewTaskStatusService(db *sql.DB, statuses store.TaskStatusStore, logger *slog.Logger) (TaskStatusService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", nil)
	}
	if statuses == nil {
		return nil, domain.NewValidationError("statuses", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStatusServiceImpl{
		db:       db,
		statuses: statuses,
		logger:   logger.With(slog.String("component", "task_status_service")),
	}, nil
}

func newTaskStatusView(s *domain.TaskStatus) TaskStatusView {
	return TaskStatusView{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		CreatedAt: s.CreatedAt,
	}
}

// List implements the TaskStatusService interface
func (s *TaskStatusServiceImpl) List(ctx context.Context) ([]TaskStatusView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	statuses, err := s.statuses.List(ctx)
	if err != nil {
		return nil, fail(log, "list_task_statuses", "failed to list task statuses", err)
	}

	views := make([]TaskStatusView, 0, len(statuses))
	for _, st := range statuses {
		views = append(views, newTaskStatusView(st))
	}
	return views, nil
}

// Get implements the TaskStatusService interface
func (s *TaskStatusServiceImpl) Get(ctx context.Context, id int64) (TaskStatusView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	status, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		return TaskStatusView{}, fail(log, "get_task_status", "failed to retrieve task status", err,
			slog.Int64("task_status_id", id))
	}
	return newTaskStatusView(status), nil
}

// Create implements the TaskStatusService interface
func (s *TaskStatusServiceImpl) Create(ctx context.Context, in TaskStatusCreate) (TaskStatusView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validatePayload(in); err != nil {
		return TaskStatusView{}, fail(log, "create_task_status", "invalid task status", err)
	}
	status := &domain.TaskStatus{Name: in.Name, Slug: in.Slug}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.statuses.WithTx(tx).Create(ctx, status)
	})
	if err != nil {
		return TaskStatusView{}, fail(log, "create_task_status", "failed to create task status", err,
			slog.String("slug", in.Slug))
	}

	log.Info("task status created",
		slog.Int64("task_status_id", status.ID),
		slog.String("slug", status.Slug))
	return newTaskStatusView(status), nil
}

// Update implements the TaskStatusService interface
func (s *TaskStatusServiceImpl) Update(ctx context.Context, id int64, in TaskStatusUpdate) (TaskStatusView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	status, err := store.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) (*domain.TaskStatus, error) {
		txStatuses := s.statuses.WithTx(tx)

		status, err := txStatuses.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		p := patch.NewPlan()
		patch.SetRequired(p, "name", in.Name, &status.Name, minLength("name", 1))
		patch.SetRequired(p, "slug", in.Slug, &status.Slug, minLength("slug", 1))
		if err := p.Apply(); err != nil {
			return nil, err
		}

		if err := txStatuses.Update(ctx, status); err != nil {
			return nil, err
		}
		return status, nil
	})
	if err != nil {
		return TaskStatusView{}, fail(log, "update_task_status", "failed to update task status", err,
			slog.Int64("task_status_id", id))
	}

	log.Info("task status updated", slog.Int64("task_status_id", id))
	return newTaskStatusView(status), nil
}

// Delete implements the TaskStatusService interface
func (s *TaskStatusServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.statuses.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return fail(log, "delete_task_status", "failed to delete task status", err,
			slog.Int64("task_status_id", id))
	}

	log.Info("task status deleted", slog.Int64("task_status_id", id))
	return nil
}
