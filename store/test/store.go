package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/homematch/preferences/internal/profile"
	"github.com/homematch/preferences/store"
	"github.com/homematch/preferences/store/db"
)

// NewTestingStore creates a sqlite-backed store in a temporary
// directory with the schema applied.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()

	dir := t.TempDir()
	testProfile := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   dir,
		DSN:    filepath.Join(dir, "preferences_test.db"),
	}

	dbDriver, err := db.NewDBDriver(testProfile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	testStore := store.New(dbDriver, testProfile)
	if err := testStore.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		if err := testStore.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})

	return testStore
}
