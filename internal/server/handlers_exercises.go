package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/claude/musclemap/internal/models"
	"github.com/go-chi/chi/v5"
)

type moveExerciseRequest struct {
	DayDate     string `json:"dayDate"`
	WorkoutID   string `json:"workoutId"`
	ExerciseID  string `json:"exerciseId"`
	TargetIndex *int   `json:"targetIndex"`
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	workoutID := chi.URLParam(r, "id")

	var draft models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var created models.Exercise
	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		out, exercise, err := s.engine.CreateExercise(ds, workoutID, draft)
		created = exercise
		return out, err
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	workoutID := chi.URLParam(r, "workoutID")
	exerciseID := chi.URLParam(r, "id")

	var patch models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var updated models.Exercise
	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		out, exercise, err := s.engine.UpdateExercise(ds, workoutID, exerciseID, patch)
		updated = exercise
		return out, err
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	workoutID := chi.URLParam(r, "workoutID")
	exerciseID := chi.URLParam(r, "id")

	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		return s.engine.DeleteExercise(ds, workoutID, exerciseID)
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleMoveExercise reorders an exercise within its workout. The endpoint
// keeps the original "/exercises/move" name even though exercises never
// change workouts.
func (s *Server) handleMoveExercise(w http.ResponseWriter, r *http.Request) {
	var req moveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.DayDate == "" || req.WorkoutID == "" || req.ExerciseID == "" || req.TargetIndex == nil {
		writeError(w, http.StatusBadRequest, "missing required fields: dayDate, workoutId, exerciseId, targetIndex")
		return
	}

	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		return s.engine.ReorderExercises(ds, req.DayDate, req.WorkoutID, req.ExerciseID, *req.TargetIndex)
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Exercise reordered to position %d", *req.TargetIndex),
	})
}
