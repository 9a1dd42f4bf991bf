package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurantlisting/internal/logger"
	"restaurantlisting/internal/restaurant"
)

func TestOpen_Memory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), Options{Driver: DriverMemory}, logger.Discard())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &MemoryStore{}, s)
}

func TestOpen_SQLiteCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "r.db")
	s, closeFn, err := Open(context.Background(), Options{Driver: DriverSQLite, SQLitePath: path}, logger.Discard())
	require.NoError(t, err)
	defer closeFn()

	saved, err := s.Save(context.Background(), restaurant.Restaurant{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	require.NoError(t, Migrate(context.Background(), Options{Driver: DriverSQLite, SQLitePath: path}, logger.Discard()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), Options{Driver: "mongo"}, logger.Discard())
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestMigrate_MemoryIsNoop(t *testing.T) {
	assert.NoError(t, Migrate(context.Background(), Options{Driver: DriverMemory}, logger.Discard()))
}
