// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/factdojo/backend/internal/domain/profile"
	"github.com/factdojo/backend/internal/domain/scoring"
	"github.com/factdojo/backend/internal/service"
	"github.com/factdojo/backend/internal/store"
)

const maxBodyBytes = 1 << 20

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	practice  *service.PracticeService
	dashboard *service.DashboardService
	logger    *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(practice *service.PracticeService, dashboard *service.DashboardService, logger *slog.Logger) *Handler {
	return &Handler{
		practice:  practice,
		dashboard: dashboard,
		logger:    logger,
	}
}

// validator is implemented by request bodies that check their own fields.
type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg} with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into v. On failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// decodeAndValidate is decodeJSON followed by the body's own Validate.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store and service errors and writes the
// appropriate HTTP response. Returns true if an error was handled (caller
// should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrProblemNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAlreadyAnswered),
		errors.Is(err, service.ErrSessionCompleted):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, profile.ErrEmptyName),
		errors.Is(err, service.ErrResetNotConfirmed),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, scoring.ErrFactOutOfRange),
		errors.Is(err, scoring.ErrInvalidOutcome):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
