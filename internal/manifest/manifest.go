// Package manifest records which report windows the last run generated.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// WindowRow describes one generated window. Day is empty for month rows.
type WindowRow struct {
	Format      string
	Year        string
	Month       string
	Day         string
	TotalTeams  int
	Species     int
	GeneratedAt time.Time
}

// DB wraps the SQL database connection holding the manifest.
type DB struct {
	*sql.DB
	path string
}

// Open opens (creating if needed) the manifest database at path.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to manifest: %w", err)
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure manifest: %w", err)
	}
	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (db *DB) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS windows (
		format TEXT NOT NULL,
		year TEXT NOT NULL,
		month TEXT NOT NULL,
		day TEXT NOT NULL DEFAULT '',
		total_teams INTEGER NOT NULL DEFAULT 0,
		species INTEGER NOT NULL DEFAULT 0,
		generated_at TEXT NOT NULL,
		PRIMARY KEY (format, year, month, day)
	);
	CREATE INDEX IF NOT EXISTS idx_windows_format ON windows(format);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Record upserts rows in a single transaction.
func (db *DB) Record(ctx context.Context, rows []WindowRow) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO windows (format, year, month, day, total_teams, species, generated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(format, year, month, day) DO UPDATE SET
		total_teams = excluded.total_teams,
		species = excluded.species,
		generated_at = excluded.generated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		generatedAt := r.GeneratedAt.UTC().Format(time.RFC3339)
		if _, err := stmt.ExecContext(ctx, r.Format, r.Year, r.Month, r.Day, r.TotalTeams, r.Species, generatedAt); err != nil {
			return fmt.Errorf("failed to record window %s %s/%s/%s: %w", r.Format, r.Year, r.Month, r.Day, err)
		}
	}

	return tx.Commit()
}

// List returns recorded windows ordered by format, year, month and day.
// An empty format lists every format.
func (db *DB) List(ctx context.Context, format string) ([]WindowRow, error) {
	query := `SELECT format, year, month, day, total_teams, species, generated_at FROM windows`
	var args []any
	if format != "" {
		query += ` WHERE format = ?`
		args = append(args, format)
	}
	query += ` ORDER BY format, year, month, day`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query windows: %w", err)
	}
	defer rows.Close()

	var out []WindowRow
	for rows.Next() {
		var r WindowRow
		var generatedAt string
		if err := rows.Scan(&r.Format, &r.Year, &r.Month, &r.Day, &r.TotalTeams, &r.Species, &generatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan window: %w", err)
		}
		r.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
