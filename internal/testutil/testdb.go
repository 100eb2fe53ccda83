package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/planpin/internal/db"
)

// NewTestDB creates an in-memory device store with migrations applied.
// It is pinned to one connection and closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewFileTestDB creates a device store in a temp directory. Unlike
// NewTestDB it is shared by every connection in the pool, which is what
// concurrency tests need.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "device.db"))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test device store %s: %v", path, err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
