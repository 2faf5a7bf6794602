package writing

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/inktrace/inktrace/pkg/db"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// setupTestDB returns a migrated and seeded database stored in a temp dir.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return setupTestDBWithDriver(t, db.DriverMattn)
}

func setupTestDBWithDriver(t *testing.T, driver string) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "inktrace.db")
	conn, err := db.OpenDBConnection(db.Options{Path: path, Driver: driver})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.EnsureSchema(context.Background(), conn, path, zerolog.Nop()))
	return conn
}

// insertTag adds a tag row directly so tests control its id.
func insertTag(t *testing.T, conn *sql.DB, id, name string) {
	t.Helper()
	_, err := conn.Exec(
		"INSERT INTO tags (id, name, usage_count, created_at) VALUES (?, ?, 0, ?)",
		id, name, db.Now(),
	)
	require.NoError(t, err)
}

func countLinks(t *testing.T, conn *sql.DB, itemID string) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow(
		"SELECT COUNT(*) FROM writing_item_tags WHERE writing_item_id = ?", itemID,
	).Scan(&n))
	return n
}

func strPtr(s string) *string { return &s }
