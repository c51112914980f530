package models

import (
	"strings"
	"testing"
)

func validWorkout(id, name string) Workout {
	return Workout{
		ID:         id,
		Name:       name,
		Exercises:  []Exercise{},
		Duration:   45,
		Difficulty: DifficultyBeginner,
		Color:      "#5A57CB",
	}
}

// TestDayValidate covers the day-level invariants: date format, capacity,
// and case-insensitive name uniqueness.
func TestDayValidate(t *testing.T) {
	tests := []struct {
		name    string
		day     Day
		wantErr string
	}{
		{
			name: "valid",
			day:  Day{Date: "2024-06-03", Workouts: []Workout{validWorkout("a", "Push")}},
		},
		{
			name:    "bad date",
			day:     Day{Date: "03/06/2024"},
			wantErr: "invalid date",
		},
		{
			name: "over capacity",
			day: Day{Date: "2024-06-03", Workouts: []Workout{
				validWorkout("1", "W1"), validWorkout("2", "W2"), validWorkout("3", "W3"),
				validWorkout("4", "W4"), validWorkout("5", "W5"), validWorkout("6", "W6"),
			}},
			wantErr: "max is 5",
		},
		{
			name: "duplicate names differ only in case",
			day: Day{Date: "2024-06-03", Workouts: []Workout{
				validWorkout("a", "Leg Day"), validWorkout("b", "LEG DAY"),
			}},
			wantErr: "duplicate workout name",
		},
		{
			name: "invalid nested workout",
			day: Day{Date: "2024-06-03", Workouts: []Workout{
				{ID: "a", Name: "Push", Difficulty: "extreme"},
			}},
			wantErr: "unknown difficulty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.day.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

// TestWorkoutValidate checks workout and nested exercise constraints.
func TestWorkoutValidate(t *testing.T) {
	w := validWorkout("a", "Push")
	if err := w.Validate(); err != nil {
		t.Fatalf("valid workout rejected: %v", err)
	}

	w.Exercises = []Exercise{{Name: "Bench", Sets: 3, Reps: 0, Type: ExerciseStrength}}
	if err := w.Validate(); err == nil {
		t.Error("zero reps accepted")
	}

	w = validWorkout("a", "Push")
	w.Duration = -5
	if err := w.Validate(); err == nil {
		t.Error("negative duration accepted")
	}
}

// TestExerciseValidate checks the per-field exercise constraints.
func TestExerciseValidate(t *testing.T) {
	tests := []struct {
		name string
		ex   Exercise
		ok   bool
	}{
		{"strength", Exercise{Name: "Squat", Sets: 5, Reps: 5, Weight: 100, Type: ExerciseStrength}, true},
		{"cardio with duration", Exercise{Name: "Row", Sets: 1, Reps: 1, Duration: 20, Type: ExerciseCardio}, true},
		{"no name", Exercise{Sets: 3, Reps: 8, Type: ExerciseStrength}, false},
		{"unknown type", Exercise{Name: "X", Sets: 3, Reps: 8, Type: "yoga"}, false},
		{"negative weight", Exercise{Name: "X", Sets: 3, Reps: 8, Weight: -1, Type: ExerciseStrength}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ex.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// TestDatasetClone verifies the clone is deep: mutating the copy leaves the
// original untouched.
func TestDatasetClone(t *testing.T) {
	w := validWorkout("a", "Push")
	w.Exercises = []Exercise{{ID: "e1", Name: "Bench", Sets: 3, Reps: 8, Type: ExerciseStrength}}
	ds := Dataset{Days: []Day{{Date: "2024-06-03", Workouts: []Workout{w}}}}

	c := ds.Clone()
	c.Days[0].Workouts[0].Name = "Changed"
	c.Days[0].Workouts[0].Exercises[0].Sets = 99

	if ds.Days[0].Workouts[0].Name != "Push" {
		t.Error("workout name mutated through clone")
	}
	if ds.Days[0].Workouts[0].Exercises[0].Sets != 3 {
		t.Error("exercise mutated through clone")
	}
}

// TestDayIndex looks days up by date.
func TestDayIndex(t *testing.T) {
	ds := Dataset{Days: []Day{{Date: "2024-06-03"}, {Date: "2024-06-04"}}}
	if got := ds.DayIndex("2024-06-04"); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	if got := ds.DayIndex("2024-06-05"); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

// TestParseDate accepts only the YYYY-MM-DD layout.
func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-06-03"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"2024-6-3", "03-06-2024", "2024/06/03", "tomorrow", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("malformed date %q accepted", bad)
		}
	}
}
