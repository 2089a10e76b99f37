package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

func execAll(tx *sql.Tx, queries []string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE IF NOT EXISTS users (
					email TEXT PRIMARY KEY,
					name TEXT NOT NULL DEFAULT '',
					phone TEXT NOT NULL DEFAULT '',
					password_hash TEXT NOT NULL,
					is_admin INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS style_history (
					id TEXT PRIMARY KEY,
					user_email TEXT NOT NULL,
					prompt TEXT NOT NULL,
					original_image TEXT NOT NULL,
					original_mime_type TEXT NOT NULL,
					styled_image TEXT NOT NULL,
					description TEXT NOT NULL,
					products TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_style_history_user ON style_history(user_email, created_at)`,

				`CREATE TABLE IF NOT EXISTS purchase_requests (
					id TEXT PRIMARY KEY,
					user_email TEXT NOT NULL,
					products TEXT NOT NULL,
					total_price INTEGER NOT NULL,
					status TEXT NOT NULL CHECK (status IN ('Pending', 'Completed')),
					created_at DATETIME NOT NULL,
					completed_at DATETIME
				)`,
				`CREATE INDEX idx_purchase_requests_status ON purchase_requests(status, created_at)`,
				`CREATE INDEX idx_purchase_requests_user ON purchase_requests(user_email)`,
			})
		},
	},
	{
		Version:     2,
		Description: "Add share key to style history",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`ALTER TABLE style_history ADD COLUMN share_key TEXT NOT NULL DEFAULT ''`,
			})
		},
	},
	{
		Version:     3,
		Description: "Record styled image type",
		Up: func(tx *sql.Tx) error {
			// Rows written before this version were always PNG.
			return execAll(tx, []string{
				`ALTER TABLE style_history ADD COLUMN styled_mime_type TEXT NOT NULL DEFAULT 'image/png'`,
			})
		},
	},
}

// Migrate runs all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion reports the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
