package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "r.db"))
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM restaurants`).Scan(&n))
	require.Equal(t, 0, n)

	// повторная миграция безопасна
	require.NoError(t, Migrate(db))
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO restaurants (name) VALUES ('a')`)
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM restaurants WHERE id = 1`).Scan(&name))
	require.Equal(t, "a", name)
}
