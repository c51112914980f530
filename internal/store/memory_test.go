package store

import (
	"context"
	"testing"
)

// TestMemoryStoreEmpty starts with an empty, non-nil day list.
func TestMemoryStoreEmpty(t *testing.T) {
	ds, err := NewMemoryStore().Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Days == nil || len(ds.Days) != 0 {
		t.Errorf("want empty non-nil Days, got %#v", ds.Days)
	}
}

// TestMemoryStoreIsolation verifies Load and Save copy the dataset, so
// callers holding references cannot mutate the stored state.
func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	in := sampleDataset()
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in.Days[0].Workouts[0].Name = "mutated after save"

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Days[0].Workouts[0].Name != "Push" {
		t.Error("saved state shares memory with caller's dataset")
	}

	out.Days[0].Workouts[0].Name = "mutated after load"
	again, _ := s.Load(ctx)
	if again.Days[0].Workouts[0].Name != "Push" {
		t.Error("loaded state shares memory with store")
	}
}
