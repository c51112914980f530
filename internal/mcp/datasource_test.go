package mcp

import (
	"testing"
	"time"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/store"
)

// TestWeekDates returns seven consecutive dates starting on Monday, for any
// weekday input including Sunday.
func TestWeekDates(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string // Monday of the week
	}{
		{"monday", time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), "2024-06-03"},
		{"wednesday", time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC), "2024-06-03"},
		{"sunday belongs to previous monday", time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC), "2024-06-03"},
		{"next monday", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "2024-06-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := weekDates(tt.in)
			if len(got) != 7 {
				t.Fatalf("got %d dates, want 7", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("week starts %s, want %s", got[0], tt.want)
			}
			for i := 1; i < 7; i++ {
				prev, _ := models.ParseDate(got[i-1])
				cur, _ := models.ParseDate(got[i])
				if !cur.Equal(prev.AddDate(0, 0, 1)) {
					t.Errorf("dates not consecutive at %d: %s -> %s", i, got[i-1], got[i])
				}
			}
		})
	}
}

// TestMaterializeWeek merges persisted days into the seven-day grid; dates
// without state come back as empty days.
func TestMaterializeWeek(t *testing.T) {
	persisted := []models.Day{
		{Date: "2024-06-04", Workouts: []models.Workout{{ID: "a", Name: "Push"}}},
		{Date: "2024-05-01", Workouts: []models.Workout{{ID: "old", Name: "Old"}}},
	}

	week := materializeWeek(persisted, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	if len(week) != 7 {
		t.Fatalf("got %d days, want 7", len(week))
	}
	if week[0].Date != "2024-06-03" || len(week[0].Workouts) != 0 {
		t.Errorf("day 0 = %+v, want empty 2024-06-03", week[0])
	}
	if week[1].Date != "2024-06-04" || len(week[1].Workouts) != 1 {
		t.Errorf("day 1 = %+v, want persisted 2024-06-04", week[1])
	}
	for _, d := range week {
		if d.Date == "2024-05-01" {
			t.Error("out-of-week day leaked into the grid")
		}
		if d.Workouts == nil {
			t.Errorf("day %s has nil Workouts", d.Date)
		}
	}
}

// TestLocalSource runs the workout lifecycle against a MemoryStore-backed
// source.
func TestLocalSource(t *testing.T) {
	ls := NewLocalSource(store.NewMemoryStore())
	ctx := t.Context()

	created, err := ls.CreateWorkout(ctx, "2024-06-03", models.Workout{
		Name: "Push", Duration: 60, Difficulty: models.DifficultyIntermediate, Color: "#5A57CB",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("workout ID not assigned")
	}

	if err := ls.ReorderWorkout(ctx, "2024-06-03", created.ID, 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	days, err := ls.Days(ctx)
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	if len(days) != 1 || len(days[0].Workouts) != 1 {
		t.Fatalf("got %+v", days)
	}

	if err := ls.DeleteWorkout(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	days, _ = ls.Days(ctx)
	if len(days[0].Workouts) != 0 {
		t.Errorf("workout not deleted: %+v", days[0].Workouts)
	}

	if err := ls.DeleteWorkout(ctx, "zzz"); err == nil {
		t.Error("deleting missing workout succeeded")
	}
}
