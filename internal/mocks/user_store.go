package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	DB *Database

	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, user *domain.User) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.User, error)
	UpdateFn  func(ctx context.Context, user *domain.User) error
	DeleteFn  func(ctx context.Context, id int64) error
}

// NewMockUserStore creates a user store over db.
func NewMockUserStore(db *Database) *MockUserStore {
	return &MockUserStore{DB: db}
}

var _ store.UserStore = (*MockUserStore)(nil)

// WithTx returns the same store; the in-memory database has no transactions.
func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}

func (m *MockUserStore) emailTaken(email string, exceptID int64) bool {
	for id, u := range m.DB.users {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if err := user.Validate(); err != nil {
		return err
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if m.emailTaken(user.Email, 0) {
		return store.ErrEmailExists
	}
	user.ID = m.DB.newID()
	user.CreatedAt = m.DB.now()
	m.DB.users[user.ID] = *user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if u := m.DB.userCopy(id); u != nil {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	for id, u := range m.DB.users {
		if u.Email == email {
			return m.DB.userCopy(id), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements the UserStore interface
func (m *MockUserStore) List(context.Context) ([]*domain.User, error) {
	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	users := make([]*domain.User, 0, len(m.DB.users))
	for id := range m.DB.users {
		users = append(users, m.DB.userCopy(id))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	if err := user.Validate(); err != nil {
		return err
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	existing, ok := m.DB.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	if m.emailTaken(user.Email, user.ID) {
		return store.ErrEmailExists
	}
	updated := *user
	updated.CreatedAt = existing.CreatedAt
	m.DB.users[user.ID] = updated
	return nil
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.DB.mu.Lock()
	defer m.DB.mu.Unlock()
	if _, ok := m.DB.users[id]; !ok {
		return store.ErrUserNotFound
	}
	if m.DB.userReferenced(id) {
		return fmt.Errorf("%w: user %d is assigned to tasks", store.ErrInUse, id)
	}
	delete(m.DB.users, id)
	return nil
}
