// Package planner implements the ordered-collection reorder/move engine for
// the workout calendar. Every operation takes a Dataset snapshot and returns
// a new Dataset; the input is never mutated, and committing the result is
// the caller's responsibility.
package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/musclemap/internal/models"
	"github.com/google/uuid"
)

// Engine applies structural changes to a Dataset. The clock is injectable so
// the past-date check is testable.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// New creates an Engine using the wall clock.
func New() *Engine {
	return NewWithClock(time.Now)
}

// NewWithClock creates an Engine with a custom clock.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now, newID: uuid.NewString}
}

// ReorderWorkouts moves the workout to targetIndex within its day's list.
// Indexes out of range (including negative) are clamped to the valid range
// after removal. Relative order of the other workouts is preserved.
func (e *Engine) ReorderWorkouts(ds models.Dataset, dayDate, workoutID string, targetIndex int) (models.Dataset, error) {
	out := ds.Clone()

	di := out.DayIndex(dayDate)
	if di == -1 {
		return ds, fmt.Errorf("day %s: %w", dayDate, ErrNotFound)
	}
	day := &out.Days[di]

	wi := workoutIndex(day.Workouts, workoutID)
	if wi == -1 {
		return ds, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}

	day.Workouts = splice(day.Workouts, wi, targetIndex)
	return out, nil
}

// ReorderExercises moves the exercise to targetIndex within its workout's
// list, with the same clamping behavior as ReorderWorkouts.
func (e *Engine) ReorderExercises(ds models.Dataset, dayDate, workoutID, exerciseID string, targetIndex int) (models.Dataset, error) {
	out := ds.Clone()

	di := out.DayIndex(dayDate)
	if di == -1 {
		return ds, fmt.Errorf("day %s: %w", dayDate, ErrNotFound)
	}
	wi := workoutIndex(out.Days[di].Workouts, workoutID)
	if wi == -1 {
		return ds, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	workout := &out.Days[di].Workouts[wi]

	ei := exerciseIndex(workout.Exercises, exerciseID)
	if ei == -1 {
		return ds, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}

	workout.Exercises = splice(workout.Exercises, ei, targetIndex)
	return out, nil
}

// MoveWorkout relocates a workout from one day to another. The workout keeps
// its identity and lands at the end of the destination list. The destination
// day is materialized if it is not in the dataset yet. Moves to a date
// strictly before today are rejected; a same-day move must be issued as a
// reorder instead.
func (e *Engine) MoveWorkout(ds models.Dataset, workoutID, fromDate, toDate string) (models.Dataset, error) {
	if fromDate == toDate {
		return ds, fmt.Errorf("%w: source and destination are both %s", ErrSameDay, fromDate)
	}

	toDay, err := models.ParseDate(toDate)
	if err != nil {
		return ds, err
	}
	if toDay.Before(today(e.now())) {
		return ds, fmt.Errorf("%w: %s", ErrPastDate, toDate)
	}

	out := ds.Clone()

	fi := out.DayIndex(fromDate)
	if fi == -1 {
		return ds, fmt.Errorf("source day %s: %w", fromDate, ErrNotFound)
	}

	wi := workoutIndex(out.Days[fi].Workouts, workoutID)
	if wi == -1 {
		return ds, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	workout := out.Days[fi].Workouts[wi]

	ti := out.DayIndex(toDate)
	if ti == -1 {
		// Appending may reallocate Days; index the source day afterwards.
		out.Days = append(out.Days, models.Day{Date: toDate, Workouts: []models.Workout{}})
		ti = len(out.Days) - 1
	}

	if len(out.Days[ti].Workouts) >= models.MaxWorkoutsPerDay {
		return ds, fmt.Errorf("%w: day %s already has %d workouts", ErrDayFull, toDate, len(out.Days[ti].Workouts))
	}

	from, to := &out.Days[fi], &out.Days[ti]
	from.Workouts = append(from.Workouts[:wi], from.Workouts[wi+1:]...)
	to.Workouts = append(to.Workouts, workout)
	return out, nil
}

// CreateWorkout appends a new workout to the day, assigning it a fresh ID.
// The day is materialized if it is not in the dataset yet.
func (e *Engine) CreateWorkout(ds models.Dataset, dayDate string, draft models.Workout) (models.Dataset, models.Workout, error) {
	if _, err := models.ParseDate(dayDate); err != nil {
		return ds, models.Workout{}, err
	}
	if err := draft.Validate(); err != nil {
		return ds, models.Workout{}, fmt.Errorf("%w: %v", ErrInvalidWorkout, err)
	}

	out := ds.Clone()

	di := out.DayIndex(dayDate)
	if di == -1 {
		out.Days = append(out.Days, models.Day{Date: dayDate, Workouts: []models.Workout{}})
		di = len(out.Days) - 1
	}
	day := &out.Days[di]

	if len(day.Workouts) >= models.MaxWorkoutsPerDay {
		return ds, models.Workout{}, fmt.Errorf("%w: day %s already has %d workouts", ErrDayFull, dayDate, len(day.Workouts))
	}
	if nameTaken(day.Workouts, draft.Name, "") {
		return ds, models.Workout{}, fmt.Errorf("%w: %q on %s", ErrDuplicateName, draft.Name, dayDate)
	}

	workout := draft.Clone()
	workout.ID = e.newID()
	if workout.Exercises == nil {
		workout.Exercises = []models.Exercise{}
	}
	for i := range workout.Exercises {
		if workout.Exercises[i].ID == "" {
			workout.Exercises[i].ID = e.newID()
		}
	}

	day.Workouts = append(day.Workouts, workout)
	return out, workout, nil
}

// UpdateWorkout replaces the workout in place; its list position is
// unchanged. The patch's ID and exercise list ordering are taken as given.
func (e *Engine) UpdateWorkout(ds models.Dataset, workoutID string, patch models.Workout) (models.Dataset, models.Workout, error) {
	if err := patch.Validate(); err != nil {
		return ds, models.Workout{}, fmt.Errorf("%w: %v", ErrInvalidWorkout, err)
	}

	out := ds.Clone()

	di, wi := findWorkout(out, workoutID)
	if di == -1 {
		return ds, models.Workout{}, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	day := &out.Days[di]

	if nameTaken(day.Workouts, patch.Name, workoutID) {
		return ds, models.Workout{}, fmt.Errorf("%w: %q on %s", ErrDuplicateName, patch.Name, day.Date)
	}

	workout := patch.Clone()
	workout.ID = workoutID
	if workout.Exercises == nil {
		workout.Exercises = []models.Exercise{}
	}
	day.Workouts[wi] = workout
	return out, workout, nil
}

// DeleteWorkout removes the workout from its day, closing the gap.
func (e *Engine) DeleteWorkout(ds models.Dataset, workoutID string) (models.Dataset, error) {
	out := ds.Clone()

	di, wi := findWorkout(out, workoutID)
	if di == -1 {
		return ds, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	day := &out.Days[di]
	day.Workouts = append(day.Workouts[:wi], day.Workouts[wi+1:]...)
	return out, nil
}

// CreateExercise appends a new exercise to the workout, assigning it a fresh
// ID. Exercises have no capacity or name-uniqueness constraint.
func (e *Engine) CreateExercise(ds models.Dataset, workoutID string, draft models.Exercise) (models.Dataset, models.Exercise, error) {
	if err := draft.Validate(); err != nil {
		return ds, models.Exercise{}, fmt.Errorf("%w: %v", ErrInvalidExercise, err)
	}

	out := ds.Clone()

	di, wi := findWorkout(out, workoutID)
	if di == -1 {
		return ds, models.Exercise{}, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	workout := &out.Days[di].Workouts[wi]

	exercise := draft
	exercise.ID = e.newID()
	workout.Exercises = append(workout.Exercises, exercise)
	return out, exercise, nil
}

// UpdateExercise replaces the exercise in place; its list position is
// unchanged.
func (e *Engine) UpdateExercise(ds models.Dataset, workoutID, exerciseID string, patch models.Exercise) (models.Dataset, models.Exercise, error) {
	if err := patch.Validate(); err != nil {
		return ds, models.Exercise{}, fmt.Errorf("%w: %v", ErrInvalidExercise, err)
	}

	out := ds.Clone()

	di, wi := findWorkout(out, workoutID)
	if di == -1 {
		return ds, models.Exercise{}, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	workout := &out.Days[di].Workouts[wi]

	ei := exerciseIndex(workout.Exercises, exerciseID)
	if ei == -1 {
		return ds, models.Exercise{}, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}

	exercise := patch
	exercise.ID = exerciseID
	workout.Exercises[ei] = exercise
	return out, exercise, nil
}

// DeleteExercise removes the exercise from its workout, closing the gap.
func (e *Engine) DeleteExercise(ds models.Dataset, workoutID, exerciseID string) (models.Dataset, error) {
	out := ds.Clone()

	di, wi := findWorkout(out, workoutID)
	if di == -1 {
		return ds, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	workout := &out.Days[di].Workouts[wi]

	ei := exerciseIndex(workout.Exercises, exerciseID)
	if ei == -1 {
		return ds, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}

	workout.Exercises = append(workout.Exercises[:ei], workout.Exercises[ei+1:]...)
	return out, nil
}

// splice removes the item at from and reinserts it at to, clamped to the
// valid range after removal.
func splice[T any](items []T, from, to int) []T {
	item := items[from]
	items = append(items[:from], items[from+1:]...)

	if to < 0 {
		to = 0
	}
	if to > len(items) {
		to = len(items)
	}

	items = append(items, item) // grow by one
	copy(items[to+1:], items[to:])
	items[to] = item
	return items
}

// today truncates t to midnight in its location; the past-date check is
// date-only.
func today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func workoutIndex(workouts []models.Workout, id string) int {
	for i, w := range workouts {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func exerciseIndex(exercises []models.Exercise, id string) int {
	for i, e := range exercises {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// findWorkout locates a workout by ID across all days. Returns (-1, -1) when
// absent.
func findWorkout(ds models.Dataset, id string) (dayIdx, workoutIdx int) {
	for i, d := range ds.Days {
		if wi := workoutIndex(d.Workouts, id); wi != -1 {
			return i, wi
		}
	}
	return -1, -1
}

// nameTaken reports whether another workout on the day already uses the name,
// case-insensitively.
func nameTaken(workouts []models.Workout, name, excludeID string) bool {
	for _, w := range workouts {
		if w.ID != excludeID && strings.EqualFold(w.Name, name) {
			return true
		}
	}
	return false
}
