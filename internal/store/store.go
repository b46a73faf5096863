// Package store persists season state that has to outlive the process: the installed content
// package count, per-save season records and generated swap tables.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/seasonswap/pkg/migrate"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// MetaContentPackageCount is the meta key holding the content package count seen at the last
// generation of the main swap table.
const MetaContentPackageCount = "content_package_count"

// Store is a small SQLite-backed key-value store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path. ":memory:" is accepted for tests.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty store path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

func initSchema(db *sql.DB) error {
	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA busy_timeout=5000;"} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("configuring store: %w", err)
		}
	}

	provider := migrate.NewFSProvider(migrations, "migrations", "")
	if err := migrate.NewMigrator(db, provider, nil).MigrateUp(context.Background()); err != nil {
		return fmt.Errorf("migrating store schema: %w", err)
	}
	return nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Meta returns the value stored under key.
func (s *Store) Meta(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading meta %s: %w", key, err)
	}
	return v, nil
}

// SetMeta stores value under key.
func (s *Store) SetMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}

// Save returns the season record stored for a save.
func (s *Store) Save(ctx context.Context, name string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM saves WHERE name = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading save %s: %w", name, err)
	}
	return v, nil
}

// PutSave stores the season record for a save.
func (s *Store) PutSave(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, name, value)
	if err != nil {
		return fmt.Errorf("writing save %s: %w", name, err)
	}
	return nil
}

// DeleteSave removes the record for a save. Deleting a missing record is not an error.
func (s *Store) DeleteSave(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting save %s: %w", name, err)
	}
	return nil
}

// Saves lists every save with a stored record, sorted by name.
func (s *Store) Saves(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM saves ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning save row: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Generated returns a stored generated table blob.
func (s *Store) Generated(ctx context.Context, name string) ([]byte, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM generated_swaps WHERE name = ?`, name).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading generated table %s: %w", name, err)
	}
	return b, nil
}

// PutGenerated stores a generated table blob.
func (s *Store) PutGenerated(ctx context.Context, name string, blob []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generated_swaps (name, blob) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET blob = excluded.blob, updated_at = CURRENT_TIMESTAMP`, name, blob)
	if err != nil {
		return fmt.Errorf("writing generated table %s: %w", name, err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
