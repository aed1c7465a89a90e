package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
)

// MockTaskStatusStore implements store.TaskStatusStore for testing
type MockTaskStatusStore struct {
	DB *Database

	GetBySlugFn func(ctx context.Context, slug string) (*domain.TaskStatus, error)
	DeleteFn    func(ctx context.Context, id int64) error
}

// NewMockTaskStatusStore creates a task status store over db.
func NewMockTaskStatusStore(db *Database) *MockTaskStatusStore {
	return &MockTaskStatusStore{DB: db}
}

var _ store.TaskStatusStore = (*MockTaskStatusStore)(nil)

// WithTx returns the same store.
func (m *MockTaskStatusStore) WithTx(*sql.Tx) store.TaskStatusStore {
	return m
}

func (m *MockTaskStatusStore) conflict(s *domain.TaskStatus) error {
	for id, other := range m.DB.statuses {
		if id == s.ID {
			continue
		}
		if other.Slug == s.Slug {
			return store.ErrSlugExists
		}
		if other.Name == s.Name {
			return store.ErrNameExists
		}
	}
	return nil
}

// Create implements the TaskStatusStore interface
func (m *MockTaskStatusStore) Create(_ context.Context, status *domain.TaskStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	status.ID = 0
	if err := m.conflict(status); err != nil {
		return err
	}
	status.ID = m.DB.newID()
	status.CreatedAt = m.DB.now()
	m.DB.statuses[status.ID] = *status
	return nil
}

// GetByID implements the TaskStatusStore interface
func (m *MockTaskStatusStore) GetByID(_ context.Context, id int64) (*domain.TaskStatus, error) {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if s := m.DB.statusCopy(id); s != nil {
		return s, nil
	}
	return nil, store.ErrTaskStatusNotFound
}

// GetBySlug implements the TaskStatusStore interface
func (m *MockTaskStatusStore) GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	for id, s := range m.DB.statuses {
		if s.Slug == slug {
			return m.DB.statusCopy(id), nil
		}
	}
	return nil, store.ErrTaskStatusNotFound
}

// List implements the TaskStatusStore interface
func (m *MockTaskStatusStore) List(context.Context) ([]*domain.TaskStatus, error) {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	statuses := make([]*domain.TaskStatus, 0, len(m.DB.statuses))
	for id := range m.DB.statuses {
		statuses = append(statuses, m.DB.statusCopy(id))
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses, nil
}

// Update implements the TaskStatusStore interface
func (m *MockTaskStatusStore) Update(_ context.Context, status *domain.TaskStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	existing, ok := m.DB.statuses[status.ID]
	if !ok {
		return store.ErrTaskStatusNotFound
	}
	if err := m.conflict(status); err != nil {
		return err
	}
	updated := *status
	updated.CreatedAt = existing.CreatedAt
	m.DB.statuses[status.ID] = updated
	return nil
}

// Delete implements the TaskStatusStore interface
func (m *MockTaskStatusStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if _, ok := m.DB.statuses[id]; !ok {
		return store.ErrTaskStatusNotFound
	}
	if m.DB.statusReferenced(id) {
		return fmt.Errorf("%w: task status %d is used by tasks", store.ErrInUse, id)
	}
	delete(m.DB.statuses, id)
	return nil
}
