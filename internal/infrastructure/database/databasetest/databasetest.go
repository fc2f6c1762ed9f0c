// Package databasetest opens throwaway databases for tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"adsmanager/internal/infrastructure/database"
)

// New opens a migrated SQLite database in a temporary directory. It is
// closed when the test ends.
func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.New(database.Options{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
