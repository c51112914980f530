// Package store persists the workout calendar dataset. The entire dataset is
// the unit of read and write: Load returns the whole document (empty when no
// prior state exists) and Save replaces it atomically. Backends are selected
// once at startup, never per call.
package store

import (
	"context"
	"fmt"

	"github.com/claude/musclemap/internal/models"
)

// Store is the persistence gateway for the calendar dataset.
type Store interface {
	// Load reads the full dataset. A missing document is not an error; an
	// empty dataset is returned instead.
	Load(ctx context.Context) (models.Dataset, error)

	// Save replaces the full dataset. The write is all-or-nothing at
	// document granularity.
	Save(ctx context.Context, ds models.Dataset) error

	// Close releases backend resources.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend        string // "file", "memory", "sqlite", or "postgres"
	Path           string // file or sqlite database path
	DSN            string // postgres connection string
	MigrationsPath string // postgres migrations directory
}

// Open creates the configured backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "file":
		return NewFileStore(opts.Path), nil
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return OpenSQLiteStore(opts.Path)
	case "postgres":
		if opts.MigrationsPath != "" {
			if err := RunMigrations(opts.DSN, opts.MigrationsPath); err != nil {
				return nil, err
			}
		}
		return OpenPostgresStore(ctx, opts.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
