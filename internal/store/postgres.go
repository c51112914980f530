package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/musclemap/internal/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the dataset as a single JSONB document in a shared
// Postgres instance, for deployments where the data lives off the host.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgresStore connects to the database and verifies the connection.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context) (models.Dataset, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM calendar_documents WHERE id = 1`).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Dataset{Days: []models.Day{}}, nil
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("loading document: %w", err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(doc, &ds); err != nil {
		return models.Dataset{}, fmt.Errorf("parsing document: %w", err)
	}
	if ds.Days == nil {
		ds.Days = []models.Day{}
	}
	return ds, nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, ds models.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO calendar_documents (id, document, updated_at)
		 VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET document = $1, updated_at = now()`, data)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
