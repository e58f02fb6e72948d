package testsupport

import (
	"context"
	"testing"

	"maldreth/internal/config"
	"maldreth/internal/lifecycle"
)

// MustOpenStore opens a lifecycle.Store for tests and registers cleanup. The
// store arrives with the 12 stages and their connections already seeded by
// the schema script.
func MustOpenStore(t testing.TB, cfg *config.Config) *lifecycle.Store {
	t.Helper()

	store, err := lifecycle.Open(cfg)
	if err != nil {
		t.Fatalf("lifecycle.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedCategory inserts a category under the named stage and returns its id.
func SeedCategory(t testing.TB, store *lifecycle.Store, stageName, category, description string) int64 {
	t.Helper()

	stage, err := store.FindStageByName(context.Background(), stageName)
	if err != nil {
		t.Fatalf("FindStageByName: %v", err)
	}
	if stage == nil {
		t.Fatalf("stage %q not seeded", stageName)
	}
	id, _, err := store.UpsertCategory(context.Background(), stage.ID, category, description)
	if err != nil {
		t.Fatalf("UpsertCategory: %v", err)
	}
	return id
}

// SeedTool inserts a tool under the given category.
func SeedTool(t testing.TB, store *lifecycle.Store, categoryID int64, name, description string) {
	t.Helper()

	if _, err := store.UpsertTool(context.Background(), categoryID, name, description); err != nil {
		t.Fatalf("UpsertTool: %v", err)
	}
}
