package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/claude/musclemap/internal/models"
	"github.com/go-chi/chi/v5"
)

type createWorkoutRequest struct {
	DayDate string         `json:"dayDate"`
	Workout models.Workout `json:"workout"`
}

type moveWorkoutRequest struct {
	WorkoutID   string `json:"workoutId"`
	FromDayDate string `json:"fromDayDate"`
	ToDayDate   string `json:"toDayDate"`
}

type reorderWorkoutRequest struct {
	DayDate     string `json:"dayDate"`
	WorkoutID   string `json:"workoutId"`
	TargetIndex *int   `json:"targetIndex"`
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.DayDate == "" {
		writeError(w, http.StatusBadRequest, "missing required field: dayDate")
		return
	}
	if _, err := models.ParseDate(req.DayDate); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var created models.Workout
	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		out, workout, err := s.engine.CreateWorkout(ds, req.DayDate, req.Workout)
		created = workout
		return out, err
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.Workout
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var updated models.Workout
	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		out, workout, err := s.engine.UpdateWorkout(ds, id, patch)
		updated = workout
		return out, err
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		return s.engine.DeleteWorkout(ds, id)
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMoveWorkout(w http.ResponseWriter, r *http.Request) {
	var req moveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.WorkoutID == "" || req.FromDayDate == "" || req.ToDayDate == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: workoutId, fromDayDate, toDayDate")
		return
	}

	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		return s.engine.MoveWorkout(ds, req.WorkoutID, req.FromDayDate, req.ToDayDate)
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Workout moved from %s to %s", req.FromDayDate, req.ToDayDate),
	})
}

func (s *Server) handleReorderWorkout(w http.ResponseWriter, r *http.Request) {
	var req reorderWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.DayDate == "" || req.WorkoutID == "" || req.TargetIndex == nil {
		writeError(w, http.StatusBadRequest, "missing required fields: dayDate, workoutId, targetIndex")
		return
	}

	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		return s.engine.ReorderWorkouts(ds, req.DayDate, req.WorkoutID, *req.TargetIndex)
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Workout reordered to position %d", *req.TargetIndex),
	})
}
