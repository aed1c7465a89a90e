package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
	"github.com/phrazzld/task-tracker/internal/taskfilter"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	DB *Database

	CreateFn func(ctx context.Context, task *domain.Task) error
	UpdateFn func(ctx context.Context, task *domain.Task) error
	ListFn   func(ctx context.Context, filter taskfilter.Filter) ([]*domain.Task, error)

	// UpdateCalls counts Update invocations, including overridden ones.
	UpdateCalls int
}

// NewMockTaskStore creates a task store over db.
func NewMockTaskStore(db *Database) *MockTaskStore {
	return &MockTaskStore{DB: db}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// WithTx returns the same store.
func (m *MockTaskStore) WithTx(*sql.Tx) store.TaskStore {
	return m
}

// toRow checks the foreign keys the schema enforces and flattens task.
func (m *MockTaskStore) toRow(task *domain.Task) (*taskRow, error) {
	if _, ok := m.DB.statuses[task.Status.ID]; !ok {
		return nil, fmt.Errorf("%w: task status %d does not exist", store.ErrInvalidEntity, task.Status.ID)
	}
	row := &taskRow{
		id:          task.ID,
		name:        task.Name,
		index:       copyInt(task.Index),
		description: copyString(task.Description),
		statusID:    task.Status.ID,
		labelIDs:    make(map[int64]struct{}, len(task.Labels)),
	}
	if task.Assignee != nil {
		if _, ok := m.DB.users[task.Assignee.ID]; !ok {
			return nil, fmt.Errorf("%w: user %d does not exist", store.ErrInvalidEntity, task.Assignee.ID)
		}
		id := task.Assignee.ID
		row.assigneeID = &id
	}
	for id := range task.Labels {
		if _, ok := m.DB.labels[id]; !ok {
			return nil, fmt.Errorf("%w: label %d does not exist", store.ErrInvalidEntity, id)
		}
		row.labelIDs[id] = struct{}{}
	}
	return row, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	row, err := m.toRow(task)
	if err != nil {
		return err
	}
	row.id = m.DB.newID()
	row.createdAt = m.DB.now()
	m.DB.tasks[row.id] = row

	task.ID = row.id
	task.CreatedAt = row.createdAt
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	row, ok := m.DB.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return m.DB.loadTask(row), nil
}

// List implements the TaskStore interface by evaluating the filter in memory.
func (m *MockTaskStore) List(ctx context.Context, filter taskfilter.Filter) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	tasks := []*domain.Task{}
	for _, row := range m.DB.tasks {
		t := m.DB.loadTask(row)
		if filter.Matches(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.UpdateCalls++
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	existing, ok := m.DB.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	row, err := m.toRow(task)
	if err != nil {
		return err
	}
	row.createdAt = existing.createdAt
	m.DB.tasks[task.ID] = row
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(_ context.Context, id int64) error {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if _, ok := m.DB.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.DB.tasks, id)
	return nil
}
