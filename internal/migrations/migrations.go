// Package migrations keeps track of which schema migrations have been
// executed.
package migrations

import (
	"context"
	"errors"
	"fmt"
)

// Status is the execution state of a migration.
type Status string

const (
	StatusPending  Status = "pending"
	StatusExecuted Status = "executed"
)

// Statuses lists every status in display order.
var Statuses = []string{string(StatusPending), string(StatusExecuted)}

var (
	// ErrNotFound indicates that no migration has the requested name.
	ErrNotFound = errors.New("migration not found")
	// ErrExists indicates that a migration with the name already exists.
	ErrExists = errors.New("migration already exists")
	// ErrInvalid indicates a migration with an empty name or content.
	ErrInvalid = errors.New("invalid migration")
)

// Migration is one bookkept migration.
type Migration struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Status  Status `json:"status"`
}

// Field returns a named attribute for searching.
func (m Migration) Field(name string) string {
	switch name {
	case "name":
		return m.Name
	case "content":
		return m.Content
	case "status":
		return string(m.Status)
	default:
		return ""
	}
}

// Repository stores migrations in creation order.
type Repository interface {
	// List returns every migration in creation order.
	List(ctx context.Context) ([]Migration, error)
	// Create appends m. It fails with ErrExists when the name is taken.
	Create(ctx context.Context, m Migration) error
	// SetStatus updates the named migrations. Unknown names fail with
	// ErrNotFound and nothing is changed.
	SetStatus(ctx context.Context, names []string, status Status) error
	Close() error
}

// Fixtures returns the migrations a new store starts with.
func Fixtures() []Migration {
	names := []string{"one", "two", "three", "four", "five"}
	out := make([]Migration, 0, len(names))
	for i, name := range names {
		status := StatusPending
		if i < 2 {
			status = StatusExecuted
		}
		out = append(out, Migration{
			Name:    name,
			Content: fmt.Sprintf("create table %s(id int, name text)", name),
			Status:  status,
		})
	}
	return out
}
