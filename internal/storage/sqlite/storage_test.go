package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/decli/internal/migrations"
)

func newTestStorage(t *testing.T) (*SQLiteStorage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "migrations.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s, dbPath
}

func TestNewSQLiteStorageSeedsFixtures(t *testing.T) {
	s, _ := newTestStorage(t)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, migrations.Fixtures(), all)
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.ErrorContains(t, err, "db path cannot be empty")
}

func TestCreateAppendsAndPersists(t *testing.T) {
	s, dbPath := newTestStorage(t)
	ctx := context.Background()

	m := migrations.Migration{Name: "six", Content: "create table six(id int)", Status: migrations.StatusPending}
	require.NoError(t, s.Create(ctx, m))

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6, "fixtures are only seeded once")
	require.Equal(t, m, all[5])
}

func TestCreateDuplicate(t *testing.T) {
	s, _ := newTestStorage(t)

	err := s.Create(context.Background(), migrations.Migration{Name: "one", Content: "x", Status: migrations.StatusPending})
	require.True(t, errors.Is(err, migrations.ErrExists))
}

func TestSetStatus(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetStatus(ctx, []string{"three", "four"}, migrations.StatusExecuted))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, migrations.StatusExecuted, all[2].Status)
	require.Equal(t, migrations.StatusExecuted, all[3].Status)
	require.Equal(t, migrations.StatusPending, all[4].Status)
}

func TestSetStatusUnknownRollsBack(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	err := s.SetStatus(ctx, []string{"three", "nope"}, migrations.StatusExecuted)
	require.True(t, errors.Is(err, migrations.ErrNotFound))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, migrations.StatusPending, all[2].Status)
}

func TestCloseNil(t *testing.T) {
	var s *SQLiteStorage
	require.NoError(t, s.Close())
}
