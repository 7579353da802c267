// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/examprep/backend/internal/service"
	"github.com/examprep/backend/internal/stats"
	"github.com/examprep/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store  store.Store
	stats  *service.StatsService
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s store.Store, statsSvc *service.StatsService, logger *slog.Logger) *Handler {
	return &Handler{
		store:  s,
		stats:  statsSvc,
		logger: logger,
	}
}

type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeAndValidate decodes the request body into v and runs its
// validation. Returns false if a response was already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	if errors.Is(err, stats.ErrMissingUser) {
		respondError(w, http.StatusBadRequest, err.Error())
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
