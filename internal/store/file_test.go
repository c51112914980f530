package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/musclemap/internal/models"
)

func sampleDataset() models.Dataset {
	return models.Dataset{Days: []models.Day{
		{Date: "2024-06-03", Workouts: []models.Workout{{
			ID:         "w1",
			Name:       "Push",
			Exercises:  []models.Exercise{{ID: "e1", Name: "Bench", Sets: 3, Reps: 8, Weight: 80, Type: models.ExerciseStrength}},
			Duration:   60,
			Difficulty: models.DifficultyIntermediate,
			Color:      "#5A57CB",
		}}},
		{Date: "2024-06-04", Workouts: []models.Workout{}},
	}}
}

func datasetsEqual(a, b models.Dataset) bool {
	if len(a.Days) != len(b.Days) {
		return false
	}
	for i := range a.Days {
		if a.Days[i].Date != b.Days[i].Date || len(a.Days[i].Workouts) != len(b.Days[i].Workouts) {
			return false
		}
		for j := range a.Days[i].Workouts {
			wa, wb := a.Days[i].Workouts[j], b.Days[i].Workouts[j]
			if wa.ID != wb.ID || wa.Name != wb.Name || len(wa.Exercises) != len(wb.Exercises) {
				return false
			}
		}
	}
	return true
}

// TestFileStoreMissingFile returns an empty dataset, not an error, when the
// file does not exist yet.
func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "db.json"))

	ds, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Days == nil || len(ds.Days) != 0 {
		t.Errorf("want empty non-nil Days, got %#v", ds.Days)
	}
}

// TestFileStoreRoundTrip saves a dataset and loads it back unchanged, then
// saves the loaded dataset again to confirm save-load-save is idempotent.
func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s := NewFileStore(path)
	ctx := context.Background()
	want := sampleDataset()

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !datasetsEqual(got, want) {
		t.Errorf("round trip changed dataset:\ngot  %+v\nwant %+v", got, want)
	}

	if err := s.Save(ctx, got); err != nil {
		t.Fatalf("second save: %v", err)
	}
	again, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !datasetsEqual(again, want) {
		t.Errorf("second round trip changed dataset")
	}
}

// TestFileStorePrettyPrinted checks the on-disk document is indented and
// newline-terminated, and leaves no temp file behind.
func TestFileStorePrettyPrinted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	s := NewFileStore(path)

	if err := s.Save(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("document is not indented")
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("document missing trailing newline")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
}

// TestFileStoreCorruptFile surfaces a parse error instead of silently
// replacing the document.
func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Error("corrupt file loaded without error")
	}
}

// TestFileStoreCreatesDir saves into a directory that does not exist yet.
func TestFileStoreCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "db.json")
	s := NewFileStore(path)

	if err := s.Save(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("save into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}
