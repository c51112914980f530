package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used as the Day primary key.
const DateLayout = "2006-01-02"

// MaxWorkoutsPerDay is the capacity limit for a single day.
const MaxWorkoutsPerDay = 5

// ExerciseType classifies an exercise.
type ExerciseType string

const (
	ExerciseStrength    ExerciseType = "strength"
	ExerciseCardio      ExerciseType = "cardio"
	ExerciseFlexibility ExerciseType = "flexibility"
)

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseStrength, ExerciseCardio, ExerciseFlexibility:
		return true
	}
	return false
}

// Difficulty rates a workout.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Exercise is a single activity entry inside a workout. Weight is meaningful
// for strength/flexibility exercises, Duration (minutes) for cardio; both
// fields may be present on the wire.
type Exercise struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Sets     int          `json:"sets"`
	Reps     int          `json:"reps"`
	Weight   float64      `json:"weight,omitempty"`
	Duration float64      `json:"duration,omitempty"`
	Type     ExerciseType `json:"type"`
}

// Validate checks the exercise field constraints.
func (e Exercise) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("exercise name is required")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("unknown exercise type %q", e.Type)
	}
	if e.Sets < 1 {
		return fmt.Errorf("sets must be >= 1, got %d", e.Sets)
	}
	if e.Reps < 1 {
		return fmt.Errorf("reps must be >= 1, got %d", e.Reps)
	}
	if e.Weight < 0 {
		return fmt.Errorf("weight must not be negative, got %g", e.Weight)
	}
	if e.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %g", e.Duration)
	}
	return nil
}

// Workout is a named, ordered collection of exercises scheduled on a day.
// Duration is in minutes.
type Workout struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Exercises  []Exercise `json:"exercises"`
	Duration   int        `json:"duration"`
	Difficulty Difficulty `json:"difficulty"`
	Color      string     `json:"color"`
}

// Validate checks the workout field constraints. Exercise-level constraints
// are checked per exercise.
func (w Workout) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workout name is required")
	}
	if !w.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", w.Difficulty)
	}
	if w.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %d", w.Duration)
	}
	for i, e := range w.Exercises {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("exercise %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the workout.
func (w Workout) Clone() Workout {
	c := w
	c.Exercises = make([]Exercise, len(w.Exercises))
	copy(c.Exercises, w.Exercises)
	return c
}

// Day is a calendar date plus its ordered list of workouts. Date is the
// primary key within a Dataset, formatted as YYYY-MM-DD.
type Day struct {
	Date     string    `json:"date"`
	Workouts []Workout `json:"workouts"`
}

// Validate checks the day's own invariants: a well-formed date, at most
// MaxWorkoutsPerDay workouts, and case-insensitively unique workout names.
func (d Day) Validate() error {
	if _, err := ParseDate(d.Date); err != nil {
		return err
	}
	if len(d.Workouts) > MaxWorkoutsPerDay {
		return fmt.Errorf("day %s has %d workouts, max is %d", d.Date, len(d.Workouts), MaxWorkoutsPerDay)
	}
	seen := make(map[string]bool, len(d.Workouts))
	for i, w := range d.Workouts {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("workout %d: %w", i, err)
		}
		key := strings.ToLower(w.Name)
		if seen[key] {
			return fmt.Errorf("duplicate workout name %q on %s", w.Name, d.Date)
		}
		seen[key] = true
	}
	return nil
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	c := d
	c.Workouts = make([]Workout, len(d.Workouts))
	for i, w := range d.Workouts {
		c.Workouts[i] = w.Clone()
	}
	return c
}

// Dataset is the root aggregate: every persisted day, in insertion order.
// The whole dataset is the unit of read and write at the storage boundary.
type Dataset struct {
	Days []Day `json:"days"`
}

// Clone returns a deep copy of the dataset.
func (ds Dataset) Clone() Dataset {
	c := Dataset{Days: make([]Day, len(ds.Days))}
	for i, d := range ds.Days {
		c.Days[i] = d.Clone()
	}
	return c
}

// DayIndex returns the position of the day with the given date, or -1.
func (ds Dataset) DayIndex(date string) int {
	for i, d := range ds.Days {
		if d.Date == date {
			return i
		}
	}
	return -1
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
