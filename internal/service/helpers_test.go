package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires the in-memory stores to a sqlmock connection that only
// sees transaction boundaries.
type testEnv struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	data     *mocks.Database
	users    *mocks.MockUserStore
	statuses *mocks.MockTaskStatusStore
	labels   *mocks.MockLabelStore
	tasks    *mocks.MockTaskStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		_ = db.Close()
	})

	data := mocks.NewDatabase()
	return &testEnv{
		db:       db,
		sqlMock:  sqlMock,
		data:     data,
		users:    mocks.NewMockUserStore(data),
		statuses: mocks.NewMockTaskStatusStore(data),
		labels:   mocks.NewMockLabelStore(data),
		tasks:    mocks.NewMockTaskStore(data),
	}
}

func (e *testEnv) expectCommit() {
	e.sqlMock.ExpectBegin()
	e.sqlMock.ExpectCommit()
}

func (e *testEnv) expectRollback() {
	e.sqlMock.ExpectBegin()
	e.sqlMock.ExpectRollback()
}

// fixture holds the seeded reference data. The user is created first so it has ID 1.
type fixture struct {
	alice, bob    *domain.User
	draft, review *domain.TaskStatus
	bug, feature  *domain.Label
}

func (e *testEnv) seed(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	fx := fixture{
		alice:   &domain.User{Email: "alice@example.com", PasswordDigest: "hashed:secret"},
		bob:     &domain.User{Email: "bob@example.com", PasswordDigest: "hashed:secret"},
		draft:   &domain.TaskStatus{Name: "Draft", Slug: "draft"},
		review:  &domain.TaskStatus{Name: "To review", Slug: "to_review"},
		bug:     &domain.Label{Name: "bug"},
		feature: &domain.Label{Name: "feature"},
	}
	require.NoError(t, e.users.Create(ctx, fx.alice))
	require.NoError(t, e.users.Create(ctx, fx.bob))
	require.NoError(t, e.statuses.Create(ctx, fx.draft))
	require.NoError(t, e.statuses.Create(ctx, fx.review))
	require.NoError(t, e.labels.Create(ctx, fx.bug))
	require.NoError(t, e.labels.Create(ctx, fx.feature))
	require.Equal(t, int64(1), fx.alice.ID)
	return fx
}

func (e *testEnv) resolver() *ReferenceResolver {
	return NewReferenceResolver(e.statuses, e.users, e.labels)
}

func (e *testEnv) mapper() *TaskMapper {
	return NewTaskMapper(e.resolver())
}

func (e *testEnv) taskService(t *testing.T) TaskService {
	t.Helper()
	svc, err := NewTaskService(e.db, e.tasks, e.statuses, e.users, e.labels, discardLogger())
	require.NoError(t, err)
	return svc
}

// createTask stores a task directly, bypassing the service.
func (e *testEnv) createTask(t *testing.T, name string, status *domain.TaskStatus, assignee *domain.User, labels ...*domain.Label) *domain.Task {
	t.Helper()
	task := &domain.Task{
		Name:     name,
		Status:   status,
		Assignee: assignee,
		Labels:   domain.NewLabelSet(labels...),
	}
	require.NoError(t, e.tasks.Create(context.Background(), task))
	return task
}
