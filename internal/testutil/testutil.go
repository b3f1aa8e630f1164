// Package testutil provides shared test helpers for temporary stores and
// lock directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tobyard/hl/internal/hlservice"
	"github.com/tobyard/hl/internal/lock"
	"github.com/tobyard/hl/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "hl-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestService creates a service over a temporary database and lock directory.
func TestService(t *testing.T) *hlservice.Service {
	t.Helper()
	db := TestDB(t)
	locks := lock.NewManager(filepath.Join(t.TempDir(), "locks"))
	return hlservice.NewService(db, locks)
}
