package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/task-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{
			name:   "email unique violation",
			err:    &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"},
			wantIs: store.ErrEmailExists,
		},
		{
			name:   "slug unique violation",
			err:    &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "task_statuses_slug_key"},
			wantIs: store.ErrSlugExists,
		},
		{
			name:   "label name unique violation",
			err:    &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "labels_name_key"},
			wantIs: store.ErrNameExists,
		},
		{
			name:   "unknown unique constraint",
			err:    &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "other_key"},
			wantIs: store.ErrDuplicate,
		},
		{
			name:   "foreign key violation on write",
			err:    &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_assignee_id_fkey"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "check violation",
			err:    &pgconn.PgError{Code: checkViolationCode, ConstraintName: "labels_name_check"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "not null violation",
			err:    &pgconn.PgError{Code: notNullViolationCode, ColumnName: "name"},
			wantIs: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}

	t.Run("unmapped error passes through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Equal(t, plain, MapError(plain))
	})
}

func TestMapDeleteError(t *testing.T) {
	t.Parallel()
	err := MapDeleteError(&pgconn.PgError{Code: foreignKeyViolationCode, TableName: "tasks"})
	assert.ErrorIs(t, err, store.ErrInUse)
	assert.True(t, store.IsConflictError(err))
	assert.NotErrorIs(t, err, store.ErrInvalidEntity)

	assert.ErrorIs(t, MapDeleteError(sql.ErrNoRows), store.ErrNotFound)
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrTaskNotFound))
	assert.Equal(t, store.ErrTaskNotFound, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound))
	assert.Equal(t, store.ErrNotFound, CheckRowsAffected(sqlmock.NewResult(0, 0), nil))
	assert.Error(t, CheckRowsAffected(nil, nil))
	assert.Error(t, CheckRowsAffected(sqlmock.NewErrorResult(errors.New("boom")), nil))
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$1", placeholders(1, 1))
	assert.Equal(t, "$3, $4, $5", placeholders(3, 3))
	assert.Equal(t, "", placeholders(1, 0))
}
