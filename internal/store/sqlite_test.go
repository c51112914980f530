package store

import (
	"context"
	"path/filepath"
	"testing"
)

// TestSQLiteStoreRoundTrip saves the document, reopens the database, and
// loads it back.
func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.db")
	ctx := context.Background()
	want := sampleDataset()

	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !datasetsEqual(got, want) {
		t.Errorf("round trip changed dataset:\ngot  %+v\nwant %+v", got, want)
	}
}

// TestSQLiteStoreEmpty returns an empty dataset before the first save, and
// repeated saves keep a single row.
func TestSQLiteStoreEmpty(t *testing.T) {
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "calendar.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	ds, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Days == nil || len(ds.Days) != 0 {
		t.Errorf("want empty non-nil Days, got %#v", ds.Days)
	}

	if err := s.Save(ctx, sampleDataset()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(ctx, sampleDataset()); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendar_documents`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d rows, want 1", count)
	}
}

// TestOpenUnknownBackend rejects backends Open does not know.
func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: "redis"}); err == nil {
		t.Error("unknown backend accepted")
	}
}
