package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/service"
)

// LabelHandler handles label HTTP requests
type LabelHandler struct {
	labels service.LabelService
	logger *slog.Logger
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labels service.LabelService, logger *slog.Logger) *LabelHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LabelHandler")
	}
	return &LabelHandler{
		labels: labels,
		logger: logger.With(slog.String("component", "label_handler")),
	}
}

// List handles GET /api/labels
func (h *LabelHandler) List(w http.ResponseWriter, r *http.Request) {
	labels, err := h.labels.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithList(w, r, labels)
}

// Get handles GET /api/labels/{id}
func (h *LabelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	label, err := h.labels.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, label)
}

// Create handles POST /api/labels
func (h *LabelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.LabelCreate
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	label, err := h.labels.Create(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, label)
}

// Update handles PUT /api/labels/{id}
func (h *LabelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req service.LabelUpdate
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	label, err := h.labels.Update(r.Context(), id, req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, label)
}

// Delete handles DELETE /api/labels/{id}
func (h *LabelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.labels.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
