package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/musclemap/internal/planner"
)

func (s *Server) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"backend":   s.backend,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps engine and storage failures to status codes:
// missing entities are 404, malformed or rejected input is 400, constraint
// conflicts are 409, and storage failures are 500.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var pe *persistenceError
	switch {
	case errors.Is(err, planner.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, planner.ErrDayFull),
		errors.Is(err, planner.ErrDuplicateName):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, planner.ErrPastDate),
		errors.Is(err, planner.ErrSameDay),
		errors.Is(err, planner.ErrInvalidWorkout),
		errors.Is(err, planner.ErrInvalidExercise):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &pe):
		s.log.Error("persistence failure", "error", err)
		writeError(w, http.StatusInternalServerError, "storage unavailable")
	default:
		s.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
