package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/planner"
	"github.com/go-chi/chi/v5"
)

var errDayExists = errors.New("day already exists")

func (s *Server) handleListDays(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeEngineError(w, &persistenceError{err})
		return
	}
	writeJSON(w, http.StatusOK, ds.Days)
}

// handleGetDay returns the day for the date, or a JSON null when the day has
// not been persisted yet; callers materialize empty days on demand.
func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeEngineError(w, &persistenceError{err})
		return
	}

	if i := ds.DayIndex(date); i != -1 {
		writeJSON(w, http.StatusOK, ds.Days[i])
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleCreateDay(w http.ResponseWriter, r *http.Request) {
	var day models.Day
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := day.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		if ds.DayIndex(day.Date) != -1 {
			return ds, fmt.Errorf("%w: %s", errDayExists, day.Date)
		}
		if day.Workouts == nil {
			day.Workouts = []models.Workout{}
		}
		ds.Days = append(ds.Days, day)
		return ds, nil
	})
	if err != nil {
		if errors.Is(err, errDayExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

// handleUpdateDay replaces the full day document at the date. The whole-day
// write still has to respect capacity and name-uniqueness invariants.
func (s *Server) handleUpdateDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var day models.Day
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	day.Date = date
	if err := day.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		i := ds.DayIndex(date)
		if i == -1 {
			return ds, fmt.Errorf("day %s: %w", date, planner.ErrNotFound)
		}
		if day.Workouts == nil {
			day.Workouts = []models.Workout{}
		}
		ds.Days[i] = day
		return ds, nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleDeleteDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	err := s.mutate(r.Context(), func(ds models.Dataset) (models.Dataset, error) {
		i := ds.DayIndex(date)
		if i == -1 {
			return ds, fmt.Errorf("day %s: %w", date, planner.ErrNotFound)
		}
		ds.Days = append(ds.Days[:i], ds.Days[i+1:]...)
		return ds, nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
