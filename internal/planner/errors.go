package planner

import "errors"

// Business-rule failures. Handlers translate these into HTTP status codes;
// everything else propagating out of the engine is a programming or input
// error.
var (
	// ErrNotFound wraps a missing day, workout, or exercise lookup.
	ErrNotFound = errors.New("not found")

	// ErrDayFull is returned when a day already holds the maximum number of
	// workouts.
	ErrDayFull = errors.New("day is full")

	// ErrDuplicateName is returned when a workout name collides
	// (case-insensitively) with another workout on the same day.
	ErrDuplicateName = errors.New("duplicate workout name")

	// ErrPastDate is returned when a workout is moved to a date strictly
	// before today.
	ErrPastDate = errors.New("cannot move workout to a past date")

	// ErrSameDay is returned when a move names the same source and
	// destination day; callers should issue a reorder instead.
	ErrSameDay = errors.New("move within the same day")

	// ErrInvalidWorkout and ErrInvalidExercise wrap draft/patch validation
	// failures.
	ErrInvalidWorkout  = errors.New("invalid workout")
	ErrInvalidExercise = errors.New("invalid exercise")
)
