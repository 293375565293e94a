// Package db provides SQLite database access for shade.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/palettelabs/shade/internal/config"
	"github.com/palettelabs/shade/internal/logging"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	*sql.DB
	logger zerolog.Logger
}

// DefaultPath returns the default database location under the XDG data
// directory.
func DefaultPath() string {
	return filepath.Join(config.DataDir(), "shade.db")
}

// Open opens the SQLite database at path, creating parent directories
// as needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	return open(path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
}

// OpenInMemory opens an in-memory database.
func OpenInMemory() (*DB, error) {
	return open(":memory:")
}

func open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps writes serialized and makes the
	// in-memory database visible to every query.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{DB: conn, logger: logging.Component("db")}, nil
}

// migrations are applied in order; each entry runs at most once.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		type TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		payload_json TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp, id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_type, entity_id)`,
}

// MigrateUp applies pending migrations and returns how many ran.
func (d *DB) MigrateUp(ctx context.Context) (int, error) {
	if _, err := d.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := d.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	applied := 0
	for i := current; i < len(migrations); i++ {
		version := i + 1

		tx, err := d.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %d: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("apply migration %d: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			version, time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("record migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %d: %w", version, err)
		}

		d.logger.Debug().Int("version", version).Msg("migration applied")
		applied++
	}

	return applied, nil
}
