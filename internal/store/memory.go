package store

import (
	"context"
	"sync"

	"github.com/claude/musclemap/internal/models"
)

// MemoryStore keeps the dataset in process memory. It is an explicit,
// injectable instance created at startup and discarded at shutdown; useful
// when no durable medium is available and in tests.
type MemoryStore struct {
	mu sync.RWMutex
	ds models.Dataset
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ds: models.Dataset{Days: []models.Day{}}}
}

// Load implements Store. The returned dataset is a deep copy; callers can
// mutate it freely.
func (s *MemoryStore) Load(ctx context.Context) (models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.Clone(), nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, ds models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds.Clone()
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
