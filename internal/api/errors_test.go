package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/service"
	"github.com/phrazzld/task-tracker/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "validation error",
			err:            domain.NewValidationError("title", "is required", nil),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid id",
			err:            domain.ErrInvalidID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid entity",
			err:            store.ErrInvalidEntity,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found error",
			err:            store.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "not found wrapped by service",
			err:            service.NewServiceError("update_task", "failed to update task", fmt.Errorf("%w: id 9", store.ErrLabelNotFound)),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "duplicate",
			err:            store.ErrSlugExists,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "in use",
			err:            fmt.Errorf("%w: referenced by tasks", store.ErrInUse),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown error",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"validation with field", domain.NewValidationError("title", "cannot be null", nil), "title cannot be null"},
		{"validation without field", domain.NewValidationError("", "payload is empty", nil), "payload is empty"},
		{"user not found", store.ErrUserNotFound, "User not found"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"status not found", fmt.Errorf("status %q: %w", "archived", store.ErrTaskStatusNotFound), "Task status not found"},
		{"label not found", store.ErrLabelNotFound, "Label not found"},
		{"generic not found", store.ErrNotFound, "Resource not found"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"slug exists", store.ErrSlugExists, "Slug already exists"},
		{"name exists", store.ErrNameExists, "Name already exists"},
		{"in use", store.ErrInUse, "Resource is still referenced by tasks"},
		{"invalid entity", store.ErrInvalidEntity, "Invalid entity data"},
		{"invalid id", domain.ErrInvalidID, "Invalid ID"},
		{"internal details", errors.New("pq: relation \"tasks\" does not exist"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}
