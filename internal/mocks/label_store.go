package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
)

// MockLabelStore implements store.LabelStore for testing
type MockLabelStore struct {
	DB *Database

	GetByIDsFn func(ctx context.Context, ids []int64) ([]*domain.Label, error)

	// GetByIDsCalls counts GetByIDs invocations.
	GetByIDsCalls int
}

// NewMockLabelStore creates a label store over db.
func NewMockLabelStore(db *Database) *MockLabelStore {
	return &MockLabelStore{DB: db}
}

var _ store.LabelStore = (*MockLabelStore)(nil)

// WithTx returns the same store.
func (m *MockLabelStore) WithTx(*sql.Tx) store.LabelStore {
	return m
}

func (m *MockLabelStore) nameTaken(name string, exceptID int64) bool {
	for id, l := range m.DB.labels {
		if l.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

// Create implements the LabelStore interface
func (m *MockLabelStore) Create(_ context.Context, label *domain.Label) error {
	if err := label.Validate(); err != nil {
		return err
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if m.nameTaken(label.Name, 0) {
		return store.ErrNameExists
	}
	label.ID = m.DB.newID()
	label.CreatedAt = m.DB.now()
	m.DB.labels[label.ID] = *label
	return nil
}

// GetByID implements the LabelStore interface
func (m *MockLabelStore) GetByID(_ context.Context, id int64) (*domain.Label, error) {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if l := m.DB.labelCopy(id); l != nil {
		return l, nil
	}
	return nil, store.ErrLabelNotFound
}

// GetByIDs implements the LabelStore interface
func (m *MockLabelStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Label, error) {
	m.GetByIDsCalls++
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, ids)
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	labels := []*domain.Label{}
	seen := map[int64]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if l := m.DB.labelCopy(id); l != nil {
			labels = append(labels, l)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })
	return labels, nil
}

// List implements the LabelStore interface
func (m *MockLabelStore) List(context.Context) ([]*domain.Label, error) {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	labels := make([]*domain.Label, 0, len(m.DB.labels))
	for id := range m.DB.labels {
		labels = append(labels, m.DB.labelCopy(id))
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })
	return labels, nil
}

// Update implements the LabelStore interface
func (m *MockLabelStore) Update(_ context.Context, label *domain.Label) error {
	if err := label.Validate(); err != nil {
		return err
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	existing, ok := m.DB.labels[label.ID]
	if !ok {
		return store.ErrLabelNotFound
	}
	if m.nameTaken(label.Name, label.ID) {
		return store.ErrNameExists
	}
	updated := *label
	updated.CreatedAt = existing.CreatedAt
	m.DB.labels[label.ID] = updated
	return nil
}

// Delete implements the LabelStore interface. Like ON DELETE CASCADE on
// task_labels, the label is unlinked from every task that carried it.
func (m *MockLabelStore) Delete(_ context.Context, id int64) error {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if _, ok := m.DB.labels[id]; !ok {
		return store.ErrLabelNotFound
	}
	delete(m.DB.labels, id)
	for _, row := range m.DB.tasks {
		delete(row.labelIDs, id)
	}
	return nil
}
