package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/redact"
	"github.com/phrazzld/task-tracker/internal/store"
)

// ServiceError wraps errors from a service operation with additional context.
// The wrapped error keeps its kind (validation, not found, conflict), so callers
// still classify it with errors.Is.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_label")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// isClientError reports whether err was caused by the request rather than the system.
// Such failures are logged at debug level.
func isClientError(err error) bool {
	return domain.IsValidationError(err) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrDuplicate) ||
		errors.Is(err, store.ErrInUse) ||
		errors.Is(err, store.ErrInvalidEntity)
}

// fail logs err at a level matching its kind and wraps it in a ServiceError.
func fail(log *slog.Logger, operation, message string, err error, attrs ...any) error {
	attrs = append(attrs, slog.String("error", redact.Error(err)))
	if isClientError(err) {
		log.Debug(message, attrs...)
	} else {
		log.Error(message, attrs...)
	}
	return NewServiceError(operation, message, err)
}
