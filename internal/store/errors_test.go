package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		wantNotFound bool
		wantDup      bool
		wantConflict bool
	}{
		{name: "nil error"},
		{name: "generic error", err: errors.New("some error")},
		{name: "ErrNotFound", err: ErrNotFound, wantNotFound: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, wantNotFound: true},
		{name: "wrapped ErrTaskNotFound", err: fmt.Errorf("load task: %w", ErrTaskNotFound), wantNotFound: true},
		{name: "ErrTaskStatusNotFound", err: ErrTaskStatusNotFound, wantNotFound: true},
		{name: "ErrLabelNotFound with id", err: fmt.Errorf("%w: id 9", ErrLabelNotFound), wantNotFound: true},
		{name: "ErrDuplicate", err: ErrDuplicate, wantDup: true, wantConflict: true},
		{name: "ErrEmailExists", err: ErrEmailExists, wantDup: true, wantConflict: true},
		{name: "ErrSlugExists", err: ErrSlugExists, wantDup: true, wantConflict: true},
		{name: "wrapped ErrNameExists", err: fmt.Errorf("create label: %w", ErrNameExists), wantDup: true, wantConflict: true},
		{name: "ErrInUse", err: ErrInUse, wantConflict: true},
		{name: "ErrInvalidEntity", err: ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNotFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.wantDup, IsDuplicateError(tt.err))
			assert.Equal(t, tt.wantConflict, IsConflictError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("task", "update", "failed to replace labels", ErrLabelNotFound)
		assert.Equal(t,
			"update operation on task failed: failed to replace labels: entity not found: label",
			err.Error())
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("label", "delete", "no rows affected", nil)
		assert.Equal(t, "delete operation on label failed: no rows affected", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
