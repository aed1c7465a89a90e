package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
	"github.com/phrazzld/task-tracker/internal/taskfilter"
)

// taskSelect loads a task with its status and optional assignee.
// The aliases t and ts are the ones taskfilter clauses are written against.
const taskSelect = `
	SELECT t.id, t.name, t.task_index, t.description, t.created_at,
		ts.id, ts.name, ts.slug, ts.created_at,
		u.id, u.email, u.first_name, u.last_name, u.password_digest, u.created_at
	FROM tasks t
	JOIN task_statuses ts ON ts.id = t.task_status_id
	LEFT JOIN users u ON u.id = t.assignee_id
`

// taskLabelSelect loads label rows for a set of task IDs given by a subquery or a parameter.
const taskLabelSelect = `
	SELECT tl.task_id, l.id, l.name, l.created_at
	FROM task_labels tl
	JOIN labels l ON l.id = tl.label_id
`

// PostgresTaskStore implements store.TaskStore.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a task store. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		t           domain.Task
		ts          domain.TaskStatus
		index       sql.NullInt32
		description sql.NullString
		userID      sql.NullInt64
		email       sql.NullString
		firstName   sql.NullString
		lastName    sql.NullString
		digest      sql.NullString
		userCreated sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.Name, &index, &description, &t.CreatedAt,
		&ts.ID, &ts.Name, &ts.Slug, &ts.CreatedAt,
		&userID, &email, &firstName, &lastName, &digest, &userCreated,
	)
	if err != nil {
		return nil, err
	}

	if index.Valid {
		i := int(index.Int32)
		t.Index = &i
	}
	t.Description = stringPtr(description)
	t.Status = &ts
	if userID.Valid {
		t.Assignee = &domain.User{
			ID:             userID.Int64,
			Email:          email.String,
			FirstName:      stringPtr(firstName),
			LastName:       stringPtr(lastName),
			PasswordDigest: digest.String,
			CreatedAt:      userCreated.Time,
		}
	}
	t.Labels = domain.LabelSet{}
	return &t, nil
}

// nullIndex expects an index already bounded by Task.Validate.
func nullIndex(i *int) sql.NullInt32 {
	if i == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*i), Valid: true}
}

func assigneeArg(t *domain.Task) sql.NullInt64 {
	if id := t.AssigneeID(); id != nil {
		return sql.NullInt64{Int64: *id, Valid: true}
	}
	return sql.NullInt64{}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (name, task_index, description, task_status_id, assignee_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Name,
		nullIndex(task.Index),
		nullString(task.Description),
		task.Status.ID,
		assigneeArg(task),
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := s.insertLabels(ctx, task.ID, task.Labels.IDs()); err != nil {
		return err
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", task.Status.Slug),
		slog.Int("label_count", len(task.Labels)))
	return nil
}

func (s *PostgresTaskStore) insertLabels(ctx context.Context, taskID int64, labelIDs []int64) error {
	if len(labelIDs) == 0 {
		return nil
	}

	query := `INSERT INTO task_labels (task_id, label_id) VALUES `
	args := make([]any, 0, len(labelIDs)+1)
	args = append(args, taskID)
	for i, id := range labelIDs {
		if i > 0 {
			query += ", "
		}
		query += "($1, " + placeholders(i+2, 1) + ")"
		args = append(args, id)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to link task labels",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(s.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	byID := map[int64]*domain.Task{task.ID: task}
	if err := s.loadLabels(ctx, byID, taskLabelSelect+` WHERE tl.task_id = $1`, id); err != nil {
		return nil, err
	}
	return task, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, filter taskfilter.Filter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := filter.Where()
	rows, err := s.db.QueryContext(ctx, taskSelect+where+` ORDER BY t.id`, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	byID := map[int64]*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
		byID[task.ID] = task
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	// Labels for the same filtered set, fetched in one query with the same arguments.
	labelQuery := taskLabelSelect + `
		WHERE tl.task_id IN (
			SELECT t.id FROM tasks t
			JOIN task_statuses ts ON ts.id = t.task_status_id
			` + where + `
		)`
	if err := s.loadLabels(ctx, byID, labelQuery, args...); err != nil {
		return nil, err
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

func (s *PostgresTaskStore) loadLabels(
	ctx context.Context,
	byID map[int64]*domain.Task,
	query string,
	args ...any,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query task labels", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var taskID int64
		var l domain.Label
		if err := rows.Scan(&taskID, &l.ID, &l.Name, &l.CreatedAt); err != nil {
			log.Error("failed to scan task label row", slog.String("error", err.Error()))
			return err
		}
		if task, ok := byID[taskID]; ok {
			task.Labels.Add(&l)
		}
	}
	return rows.Err()
}

// Update implements store.TaskStore.Update
// The label set is replaced wholesale.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET name = $1, task_index = $2, description = $3, task_status_id = $4, assignee_id = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Name,
		nullIndex(task.Index),
		nullString(task.Description),
		task.Status.ID,
		assigneeArg(task),
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM task_labels WHERE task_id = $1`, task.ID); err != nil {
		log.Error("failed to clear task labels",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}
	if err := s.insertLabels(ctx, task.ID, task.Labels.IDs()); err != nil {
		return err
	}

	log.Info("task updated successfully", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapDeleteError(err)
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}
