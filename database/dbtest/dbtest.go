// Package dbtest provides a migrated SQLite store for behavior tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"interview-scheduler/database"
)

// NewSQLite opens a fresh SQLite file under tb.TempDir and migrates it. The
// handle is closed when the test finishes.
func NewSQLite(tb testing.TB) *database.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "scheduler.db")
	db, err := database.Connect(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		DSN:    path,
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		tb.Fatalf("failed to migrate sqlite: %v", err)
	}
	return db
}
