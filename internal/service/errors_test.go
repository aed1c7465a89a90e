package service

import (
	"errors"
	"testing"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		message  string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			op:       "create_task",
			message:  "failed to create task",
			err:      errors.New("database connection failed"),
			expected: "create_task operation failed: failed to create task: database connection failed",
		},
		{
			name:     "without underlying error",
			op:       "delete_label",
			message:  "failed to delete label",
			expected: "delete_label operation failed: failed to delete label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewServiceError(tt.op, tt.message, tt.err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestServiceError_Unwrap(t *testing.T) {
	err := NewServiceError("get_task", "failed to retrieve task", store.ErrTaskNotFound)

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var svcErr *ServiceError
	assert.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "get_task", svcErr.Operation)
}

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", domain.NewValidationError("title", "is required", nil), true},
		{"not found", store.ErrLabelNotFound, true},
		{"duplicate", store.ErrSlugExists, true},
		{"in use", store.ErrInUse, true},
		{"invalid entity", store.ErrInvalidEntity, true},
		{"system", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isClientError(tt.err))
		})
	}
}
