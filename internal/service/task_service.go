package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
	"github.com/phrazzld/task-tracker/internal/taskfilter"
)

// TaskService provides task operations in terms of the external payloads.
type TaskService interface {
	// List returns the tasks matching params, ordered by ID.
	List(ctx context.Context, params taskfilter.Params) ([]TaskView, error)

	// Get returns a single task.
	Get(ctx context.Context, id int64) (TaskView, error)

	// Create validates the payload, resolves its references and saves the new task.
	Create(ctx context.Context, in TaskCreate) (TaskView, error)

	// Update applies a partial update. Absent fields are left unchanged; if any
	// present field is invalid or unresolvable nothing is saved.
	Update(ctx context.Context, id int64, in TaskUpdate) (TaskView, error)

	// Delete removes a task and its label links.
	Delete(ctx context.Context, id int64) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	db       *sql.DB
	tasks    store.TaskStore
	statuses store.TaskStatusStore
	users    store.UserStore
	labels   store.LabelStore
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	tasks store.TaskStore,
	statuses store.TaskStatusStore,
	users store.UserStore,
	labels store.LabelStore,
	logger *slog.Logger,
) (TaskService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", nil)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", nil)
	}
	if statuses == nil {
		return nil, domain.NewValidationError("statuses", "cannot be nil", nil)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", nil)
	}
	if labels == nil {
		return nil, domain.NewValidationError("labels", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskServiceImpl{
		db:       db,
		tasks:    tasks,
		statuses: statuses,
		users:    users,
		labels:   labels,
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// txMapper returns a mapper whose lookups run inside tx.
func (s *TaskServiceImpl) txMapper(tx *sql.Tx) *TaskMapper {
	return NewTaskMapper(NewReferenceResolver(
		s.statuses.WithTx(tx),
		s.users.WithTx(tx),
		s.labels.WithTx(tx),
	))
}

// List implements the TaskService interface
func (s *TaskServiceImpl) List(ctx context.Context, params taskfilter.Params) ([]TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.List(ctx, taskfilter.Build(params))
	if err != nil {
		return nil, fail(log, "list_tasks", "failed to list tasks", err)
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t))
	}
	return views, nil
}

// Get implements the TaskService interface
func (s *TaskServiceImpl) Get(ctx context.Context, id int64) (TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return TaskView{}, fail(log, "get_task", "failed to retrieve task", err,
			slog.Int64("task_id", id))
	}
	return newTaskView(task), nil
}

// Create implements the TaskService interface
func (s *TaskServiceImpl) Create(ctx context.Context, in TaskCreate) (TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validatePayload(in); err != nil {
		return TaskView{}, fail(log, "create_task", "invalid task payload", err)
	}

	task, err := store.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) (*domain.Task, error) {
		task, err := s.txMapper(tx).ToEntity(ctx, in)
		if err != nil {
			return nil, err
		}
		if err := s.tasks.WithTx(tx).Create(ctx, task); err != nil {
			return nil, err
		}
		return task, nil
	})
	if err != nil {
		return TaskView{}, fail(log, "create_task", "failed to create task", err,
			slog.String("status", in.Status))
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("status", task.Status.Slug))
	return newTaskView(task), nil
}

// Update implements the TaskService interface
func (s *TaskServiceImpl) Update(ctx context.Context, id int64, in TaskUpdate) (TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := store.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) (*domain.Task, error) {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, err := s.txMapper(tx).ApplyUpdate(ctx, in, task); err != nil {
			return nil, err
		}
		if err := txTasks.Update(ctx, task); err != nil {
			return nil, err
		}
		return task, nil
	})
	if err != nil {
		return TaskView{}, fail(log, "update_task", "failed to update task", err,
			slog.Int64("task_id", id))
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return newTaskView(task), nil
}

// Delete implements the TaskService interface
func (s *TaskServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return fail(log, "delete_task", "failed to delete task", err,
			slog.Int64("task_id", id))
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}
