// Package storage selects and provides migration repositories.
package storage

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/decli/internal/colors"
	"github.com/cristianoliveira/decli/internal/config"
	"github.com/cristianoliveira/decli/internal/migrations"
	"github.com/cristianoliveira/decli/internal/storage/sqlite"
)

const (
	// BackendMemory keeps fixtures in memory for one invocation.
	BackendMemory = "memory"
	// BackendSQLite persists migrations in a SQLite database.
	BackendSQLite = "sqlite"
)

var _ migrations.Repository = (*sqlite.SQLiteStorage)(nil)

var newSQLiteStorage = func(path string) (migrations.Repository, error) {
	return sqlite.NewSQLiteStorage(path)
}

// NewFromConfig creates the repository selected by the loaded
// configuration.
func NewFromConfig() (migrations.Repository, error) {
	return NewForBackend(config.Get("storage_backend", BackendMemory), config.Get("db_path", ""))
}

// NewForBackend creates a repository for backend. When SQLite cannot be
// opened it warns and falls back to memory.
func NewForBackend(backend, dbPath string) (migrations.Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return NewMemoryStorage(migrations.Fixtures()), nil
	case BackendSQLite:
		repo, err := newSQLiteStorage(dbPath)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to memory: %v", err))
			return NewMemoryStorage(migrations.Fixtures()), nil
		}
		return repo, nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to memory", backend))
		return NewMemoryStorage(migrations.Fixtures()), nil
	}
}
