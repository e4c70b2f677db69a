package common

import (
	"path/filepath"
	"testing"
	"time"
)

// TestSubstrate opens a real sqlite-backed substrate on a file under the
// test's temporary directory. The database is migrated and cleaned up with
// the test.
func TestSubstrate(t *testing.T) *SQLiteSubstrate {
	t.Helper()

	path := filepath.Join(t.TempDir(), "substrate.db")

	sub, err := NewSQLiteSubstrate(path)
	if err != nil {
		t.Fatalf("could not open test substrate: %v", err)
	}

	t.Cleanup(func() {
		if err := sub.Close(); err != nil {
			t.Fatalf("could not close test substrate: %v", err)
		}
	})

	return sub
}

// TestCache returns a cache with generous expiry for use in service tests.
func TestCache(t *testing.T) *Cache {
	t.Helper()

	c := NewCache(5*time.Minute, 10*time.Minute)
	t.Cleanup(c.Flush)

	return c
}
