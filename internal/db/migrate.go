package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// All contains the ordered list of migrations to apply.
var All = []string{
	`CREATE TABLE files (
		id           INTEGER PRIMARY KEY,
		file_path    TEXT UNIQUE NOT NULL,
		feature_name TEXT NOT NULL DEFAULT '',
		checksum     TEXT NOT NULL DEFAULT '',
		output_path  TEXT NOT NULL DEFAULT '',
		created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
		updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE scenarios (
		id         INTEGER PRIMARY KEY,
		file_id    INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL,
		tags       TEXT NOT NULL DEFAULT '',
		steps      INTEGER NOT NULL DEFAULT 0,
		examples   INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE INDEX scenarios_file_id ON scenarios(file_id, position)`,
}

// Migrate brings the schema up to len(All). Each migration runs in its own
// transaction together with the version bump.
func Migrate(ctx context.Context, sqlDB *sql.DB) error {
	_, err := sqlDB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	current, err := schemaVersion(ctx, sqlDB)
	if err != nil {
		return err
	}

	for i := current; i < len(All); i++ {
		if err := apply(ctx, sqlDB, i); err != nil {
			return err
		}
		log.Debug().Int("version", i+1).Msg("Applied migration")
	}

	return nil
}

func schemaVersion(ctx context.Context, sqlDB *sql.DB) (int, error) {
	var count int
	if err := sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return 0, fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := sqlDB.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return 0, fmt.Errorf("initializing schema version: %w", err)
		}
		return 0, nil
	}

	var current int
	if err := sqlDB.QueryRowContext(ctx, `SELECT version FROM schema_version`).Scan(&current); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return current, nil
}

func apply(ctx context.Context, sqlDB *sql.DB, i int) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", i+1, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, All[i]); err != nil {
		return fmt.Errorf("migration %d failed: %w", i+1, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE schema_version SET version = ?`, i+1); err != nil {
		return fmt.Errorf("updating schema version to %d: %w", i+1, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", i+1, err)
	}
	return nil
}
