// Package sqlite provides a SQLite-backed migration repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cristianoliveira/decli/internal/migrations"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS migrations (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL UNIQUE,
	content  TEXT NOT NULL,
	status   TEXT NOT NULL CHECK (status IN ('pending', 'executed'))
);`

// SQLiteStorage implements migrations.Repository using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

var _ migrations.Repository = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens the database at dbPath, creating it and seeding
// the fixtures when it has no migrations yet.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		return fmt.Errorf("sqlite storage: count migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, m := range migrations.Fixtures() {
			if err := insert(ctx, tx, m); err != nil {
				return fmt.Errorf("sqlite storage: seed %q: %w", m.Name, err)
			}
		}
		return nil
	})
}

// List returns every migration in creation order.
func (s *SQLiteStorage) List(ctx context.Context) ([]migrations.Migration, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, content, status FROM migrations ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list migrations: %w", err)
	}
	defer rows.Close()

	var out []migrations.Migration
	for rows.Next() {
		var m migrations.Migration
		var status string
		if err := rows.Scan(&m.Name, &m.Content, &status); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan migration: %w", err)
		}
		m.Status = migrations.Status(status)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list migrations: %w", err)
	}
	return out, nil
}

// Create appends m.
func (s *SQLiteStorage) Create(ctx context.Context, m migrations.Migration) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		exists, err := nameExists(ctx, tx, m.Name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("sqlite storage: %w", migrations.ErrExists)
		}
		if err := insert(ctx, tx, m); err != nil {
			return fmt.Errorf("sqlite storage: create migration: %w", err)
		}
		return nil
	})
}

// SetStatus updates the named migrations in one transaction.
func (s *SQLiteStorage) SetStatus(ctx context.Context, names []string, status migrations.Status) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			res, err := tx.ExecContext(ctx, "UPDATE migrations SET status = ? WHERE name = ?", string(status), name)
			if err != nil {
				return fmt.Errorf("sqlite storage: update %q: %w", name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("sqlite storage: update %q: %w", name, err)
			}
			if n == 0 {
				return fmt.Errorf("sqlite storage: %w: %q", migrations.ErrNotFound, name)
			}
		}
		return nil
	})
}

func (s *SQLiteStorage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite storage: begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite storage: commit transaction: %w", err)
	}
	return nil
}

func insert(ctx context.Context, tx *sql.Tx, m migrations.Migration) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO migrations (name, content, status) VALUES (?, ?, ?)",
		m.Name, m.Content, string(m.Status))
	return err
}

func nameExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM migrations WHERE name = ?", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite storage: lookup %q: %w", name, err)
	}
	return true, nil
}
