package lifecycle_test

import (
	"context"
	"testing"

	"maldreth/internal/lifecycle"
	"maldreth/internal/testsupport"
)

func TestOpenSeedsStagesAndConnections(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	stages, err := store.ListStages(ctx)
	if err != nil {
		t.Fatalf("ListStages failed: %v", err)
	}
	if len(stages) != 12 {
		t.Fatalf("expected 12 seeded stages, got %d", len(stages))
	}
	if stages[0].Name != "Conceptualise" || stages[11].Name != "Transform" {
		t.Fatalf("unexpected stage ordering: first=%q last=%q", stages[0].Name, stages[11].Name)
	}
	for i, stage := range stages {
		if stage.OrderIndex != int64(i+1) {
			t.Fatalf("stage %q has order_index %d at position %d", stage.Name, stage.OrderIndex, i)
		}
	}

	conns, err := store.ListConnections(ctx)
	if err != nil {
		t.Fatalf("ListConnections failed: %v", err)
	}
	if len(conns) == 0 {
		t.Fatal("expected seeded connections")
	}
	normal := 0
	for _, conn := range conns {
		switch conn.Type {
		case lifecycle.ConnectionNormal:
			normal++
		case lifecycle.ConnectionAlternative:
		default:
			t.Fatalf("unexpected connection type %q", conn.Type)
		}
	}
	if normal != 12 {
		t.Fatalf("expected 12 normal connections forming the ring, got %d", normal)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store := testsupport.MustOpenStore(t, cfg)
	id := testsupport.SeedCategory(t, store, "Collect", "Acquisition", "Data acquisition instruments")
	testsupport.SeedTool(t, store, id, "ToolA", "")
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	counts, err := reopened.CountsByTable(context.Background())
	if err != nil {
		t.Fatalf("CountsByTable: %v", err)
	}
	if counts.Stages != 12 {
		t.Fatalf("reopen duplicated stages: %d", counts.Stages)
	}
	if counts.Categories != 1 || counts.Tools != 1 {
		t.Fatalf("reopen lost or duplicated imports: %+v", counts)
	}
}

func TestListCategoriesFiltersByStage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SeedCategory(t, store, "Collect", "Acquisition", "")
	testsupport.SeedCategory(t, store, "Collect", "Observation", "")
	testsupport.SeedCategory(t, store, "Plan", "DMP Tools", "")

	collect, err := store.FindStageByName(ctx, "Collect")
	if err != nil || collect == nil {
		t.Fatalf("FindStageByName: %v %v", collect, err)
	}

	categories, err := store.ListCategories(ctx, collect.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories for Collect, got %d", len(categories))
	}
	for _, c := range categories {
		if c.StageID != collect.ID {
			t.Fatalf("category %q belongs to stage %d, want %d", c.Name, c.StageID, collect.ID)
		}
	}
	// Ordered by name.
	if categories[0].Name != "Acquisition" || categories[1].Name != "Observation" {
		t.Fatalf("unexpected ordering: %q, %q", categories[0].Name, categories[1].Name)
	}

	all, err := store.ListCategories(ctx, 0)
	if err != nil {
		t.Fatalf("ListCategories(all): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 categories total, got %d", len(all))
	}

	none, err := store.ListCategories(ctx, 9999)
	if err != nil {
		t.Fatalf("ListCategories(unknown): %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result for unknown stage, got %d", len(none))
	}
}

func TestListToolsFiltersByCategory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	acqID := testsupport.SeedCategory(t, store, "Collect", "Acquisition", "")
	obsID := testsupport.SeedCategory(t, store, "Collect", "Observation", "")
	testsupport.SeedTool(t, store, acqID, "Zotero", "")
	testsupport.SeedTool(t, store, acqID, "Aleph", "")
	testsupport.SeedTool(t, store, obsID, "FieldNotes", "")

	tools, err := store.ListTools(ctx, acqID)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	if tools[0].Name != "Aleph" || tools[1].Name != "Zotero" {
		t.Fatalf("tools not ordered by name: %q, %q", tools[0].Name, tools[1].Name)
	}
	for _, tool := range tools {
		if tool.CategoryID != acqID {
			t.Fatalf("tool %q in category %d, want %d", tool.Name, tool.CategoryID, acqID)
		}
	}

	none, err := store.ListTools(ctx, 9999)
	if err != nil {
		t.Fatalf("ListTools(unknown): %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result for unknown category, got %d", len(none))
	}
}

func TestSearchTools(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	acqID := testsupport.SeedCategory(t, store, "Collect", "Acquisition", "")
	anaID := testsupport.SeedCategory(t, store, "Analyse", "Statistics", "")
	testsupport.SeedTool(t, store, acqID, "REDCap", "Electronic data capture")
	testsupport.SeedTool(t, store, anaID, "SPSS", "statistical analysis suite")
	testsupport.SeedTool(t, store, anaID, "R", "Language for statistical computing")

	t.Run("blank query returns nothing", func(t *testing.T) {
		for _, q := range []string{"", "   "} {
			results, err := store.SearchTools(ctx, q)
			if err != nil {
				t.Fatalf("SearchTools(%q): %v", q, err)
			}
			if len(results) != 0 {
				t.Fatalf("expected empty result for %q, got %d", q, len(results))
			}
		}
	})

	t.Run("case-insensitive match on name or description", func(t *testing.T) {
		results, err := store.SearchTools(ctx, "STATISTIC")
		if err != nil {
			t.Fatalf("SearchTools: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(results))
		}
		// Ordered by stage order, category name, tool name.
		if results[0].Tool.Name != "R" || results[1].Tool.Name != "SPSS" {
			t.Fatalf("unexpected ordering: %q, %q", results[0].Tool.Name, results[1].Tool.Name)
		}
		if results[0].StageName != "Analyse" || results[0].CategoryName != "Statistics" {
			t.Fatalf("join fields wrong: %+v", results[0])
		}
	})

	t.Run("ordering spans stages by lifecycle position", func(t *testing.T) {
		results, err := store.SearchTools(ctx, "a")
		if err != nil {
			t.Fatalf("SearchTools: %v", err)
		}
		var lastOrder int64
		for _, r := range results {
			if r.StageOrder < lastOrder {
				t.Fatalf("results not ordered by stage position: %+v", results)
			}
			lastOrder = r.StageOrder
		}
	})

	t.Run("LIKE metacharacters match literally", func(t *testing.T) {
		results, err := store.SearchTools(ctx, "%")
		if err != nil {
			t.Fatalf("SearchTools: %v", err)
		}
		if len(results) != 0 {
			t.Fatalf("expected no literal %% matches, got %d", len(results))
		}
	})
}

func TestUpsertIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	collect, err := store.FindStageByName(ctx, "Collect")
	if err != nil || collect == nil {
		t.Fatalf("FindStageByName: %v %v", collect, err)
	}

	firstID, inserted, err := store.UpsertCategory(ctx, collect.ID, "Acquisition", "desc")
	if err != nil || !inserted {
		t.Fatalf("first upsert: id=%d inserted=%v err=%v", firstID, inserted, err)
	}
	secondID, inserted, err := store.UpsertCategory(ctx, collect.ID, "Acquisition", "other desc")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if inserted {
		t.Fatal("second upsert should not insert")
	}
	if firstID != secondID {
		t.Fatalf("upsert resolved different ids: %d vs %d", firstID, secondID)
	}

	if inserted, err := store.UpsertTool(ctx, firstID, "ToolA", ""); err != nil || !inserted {
		t.Fatalf("first tool upsert: inserted=%v err=%v", inserted, err)
	}
	if inserted, err := store.UpsertTool(ctx, firstID, "ToolA", ""); err != nil || inserted {
		t.Fatalf("second tool upsert: inserted=%v err=%v", inserted, err)
	}

	counts, err := store.CountsByTable(ctx)
	if err != nil {
		t.Fatalf("CountsByTable: %v", err)
	}
	if counts.Categories != 1 || counts.Tools != 1 {
		t.Fatalf("duplicates after repeated upserts: %+v", counts)
	}
}

func TestGetStageUnknownIDReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	stage, err := store.GetStage(context.Background(), 404)
	if err != nil {
		t.Fatalf("GetStage: %v", err)
	}
	if stage != nil {
		t.Fatalf("expected nil for unknown stage, got %+v", stage)
	}
}
