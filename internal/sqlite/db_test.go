package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", "kv_store").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "table kv_store not found")
}

// TestMigrationsIdempotent verifies the schema can be applied to an existing database
func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

// TestKVStoreTable verifies the primary key constraint on kv_store
func TestKVStoreTable(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO kv_store (key, value) VALUES (?, ?)`, "k", "v")
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO kv_store (key, value) VALUES (?, ?)`, "k", "v2")
	require.Error(t, err, "duplicate key should fail")
}
