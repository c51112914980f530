package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/musclemap/internal/models"
)

// FileStore keeps the dataset in a pretty-printed JSON file. Saves go through
// a temp file and rename so a failed write never truncates the document.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path. The file is created on
// first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) (models.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.Dataset{Days: []models.Day{}}, nil
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return models.Dataset{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if ds.Days == nil {
		ds.Days = []models.Day{}
	}
	return ds, nil
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, ds models.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }
