package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/cristianoliveira/decli/internal/migrations"
)

// MemoryStorage keeps migrations for the lifetime of the process.
type MemoryStorage struct {
	mu    sync.RWMutex
	items []migrations.Migration
}

var _ migrations.Repository = (*MemoryStorage)(nil)

// NewMemoryStorage returns a store holding a copy of seed.
func NewMemoryStorage(seed []migrations.Migration) *MemoryStorage {
	return &MemoryStorage{items: append([]migrations.Migration(nil), seed...)}
}

// List returns a copy of every migration in creation order.
func (s *MemoryStorage) List(context.Context) ([]migrations.Migration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]migrations.Migration(nil), s.items...), nil
}

// Create appends m.
func (s *MemoryStorage) Create(_ context.Context, m migrations.Migration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(m.Name) >= 0 {
		return fmt.Errorf("memory storage: %w", migrations.ErrExists)
	}
	s.items = append(s.items, m)
	return nil
}

// SetStatus updates the named migrations, or none of them when a name is
// unknown.
func (s *MemoryStorage) SetStatus(_ context.Context, names []string, status migrations.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := make([]int, 0, len(names))
	for _, name := range names {
		i := s.index(name)
		if i < 0 {
			return fmt.Errorf("memory storage: %w: %q", migrations.ErrNotFound, name)
		}
		idx = append(idx, i)
	}
	for _, i := range idx {
		s.items[i].Status = status
	}
	return nil
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}

func (s *MemoryStorage) index(name string) int {
	for i, m := range s.items {
		if m.Name == name {
			return i
		}
	}
	return -1
}
