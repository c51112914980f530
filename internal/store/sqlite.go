package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/musclemap/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the dataset as a single JSON document in a one-row
// SQLite table. The document is still the unit of read and write; SQLite
// only provides local durability.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at the given path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS calendar_documents (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		document   TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating document table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (models.Dataset, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM calendar_documents WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dataset{Days: []models.Day{}}, nil
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("loading document: %w", err)
	}

	var ds models.Dataset
	if err := json.Unmarshal([]byte(doc), &ds); err != nil {
		return models.Dataset{}, fmt.Errorf("parsing document: %w", err)
	}
	if ds.Days == nil {
		ds.Days = []models.Day{}
	}
	return ds, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, ds models.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO calendar_documents (id, document, updated_at)
		 VALUES (1, ?, CURRENT_TIMESTAMP)`, string(data))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }
