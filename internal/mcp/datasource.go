package mcp

import (
	"context"
	"sync"
	"time"

	"github.com/claude/musclemap/internal/client"
	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/planner"
	"github.com/claude/musclemap/internal/store"
)

// DataSource abstracts the calendar for MCP tools. Both LocalSource (direct
// store access) and *client.Client (remote via REST API) satisfy this
// interface.
type DataSource interface {
	Days(ctx context.Context) ([]models.Day, error)
	CreateWorkout(ctx context.Context, dayDate string, draft models.Workout) (models.Workout, error)
	DeleteWorkout(ctx context.Context, workoutID string) error
	MoveWorkout(ctx context.Context, workoutID, fromDate, toDate string) error
	ReorderWorkout(ctx context.Context, dayDate, workoutID string, targetIndex int) error
}

// Compile-time check: *client.Client satisfies DataSource.
var _ DataSource = (*client.Client)(nil)

// LocalSource serves MCP tools straight from a store, running engine
// operations in-process. Mutations serialize behind a mutex, mirroring the
// HTTP server's load-transform-save discipline.
type LocalSource struct {
	store  store.Store
	engine *planner.Engine

	mu sync.Mutex
}

// Compile-time check: *LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

// NewLocalSource creates a LocalSource over the given store.
func NewLocalSource(st store.Store) *LocalSource {
	return &LocalSource{store: st, engine: planner.New()}
}

func (s *LocalSource) Days(ctx context.Context) ([]models.Day, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Days, nil
}

func (s *LocalSource) CreateWorkout(ctx context.Context, dayDate string, draft models.Workout) (models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return models.Workout{}, err
	}
	out, workout, err := s.engine.CreateWorkout(ds, dayDate, draft)
	if err != nil {
		return models.Workout{}, err
	}
	if err := s.store.Save(ctx, out); err != nil {
		return models.Workout{}, err
	}
	return workout, nil
}

func (s *LocalSource) DeleteWorkout(ctx context.Context, workoutID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	out, err := s.engine.DeleteWorkout(ds, workoutID)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, out)
}

func (s *LocalSource) MoveWorkout(ctx context.Context, workoutID, fromDate, toDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	out, err := s.engine.MoveWorkout(ds, workoutID, fromDate, toDate)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, out)
}

func (s *LocalSource) ReorderWorkout(ctx context.Context, dayDate, workoutID string, targetIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	out, err := s.engine.ReorderWorkouts(ds, dayDate, workoutID, targetIndex)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, out)
}

// weekDates returns the dates of the Monday-start week containing t.
func weekDates(t time.Time) []string {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	monday := t.AddDate(0, 0, -offset)

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i).Format(models.DateLayout)
	}
	return dates
}

// materializeWeek merges persisted days into a complete 7-day week; dates
// with no persisted state come back as empty days.
func materializeWeek(days []models.Day, t time.Time) []models.Day {
	week := make([]models.Day, 0, 7)
	for _, date := range weekDates(t) {
		day := models.Day{Date: date, Workouts: []models.Workout{}}
		for _, d := range days {
			if d.Date == date {
				day = d
				break
			}
		}
		week = append(week, day)
	}
	return week
}
