package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/service"
)

// TaskStatusHandler handles task status HTTP requests
type TaskStatusHandler struct {
	statuses service.TaskStatusService
	logger   *slog.Logger
}

// NewTaskStatusHandler creates a new TaskStatusHandler
func NewTaskStatusHandler(statuses service.TaskStatusService, logger *slog.Logger) *TaskStatusHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskStatusHandler")
	}
	return &TaskStatusHandler{
		statuses: statuses,
		logger:   logger.With(slog.String("component", "task_status_handler")),
	}
}

// List handles GET /api/task_statuses
func (h *TaskStatusHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.statuses.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithList(w, r, statuses)
}

// Get handles GET /api/task_statuses/{id}
func (h *TaskStatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	status, err := h.statuses.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, status)
}

// Create handles POST /api/task_statuses
func (h *TaskStatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.TaskStatusCreate
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	status, err := h.statuses.Create(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, status)
}

// Update handles PUT /api/task_statuses/{id}
func (h *TaskStatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req service.TaskStatusUpdate
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	status, err := h.statuses.Update(r.Context(), id, req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, status)
}

// Delete handles DELETE /api/task_statuses/{id}
func (h *TaskStatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.statuses.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
