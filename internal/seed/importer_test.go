package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"maldreth/internal/logging"
	"maldreth/internal/seed"
	"maldreth/internal/testsupport"
)

const sampleCSV = `RESEARCH DATA LIFECYCLE STAGE,TOOL CATEGORY TYPE,DESCRIPTION (1 SENTENCE),EXAMPLES
Collect,Acquisition,Tools for acquiring data.,"ToolA, ToolB"
Plan,Data Management Planning,Tools for writing DMPs.,DMPTool
,Orphan Category,No stage on this row,LostTool
Collect,,Missing category,IgnoredTool
Atlantis,Myth Tools,Unknown stage,Trident
`

func TestImportCreatesLinkedRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	importer, err := seed.NewImporter(store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	summary, err := importer.Import(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.RowsTotal != 5 {
		t.Fatalf("expected 5 data rows, got %d", summary.RowsTotal)
	}
	if summary.RowsSkipped != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", summary.RowsSkipped)
	}
	if summary.CategoriesAdded != 2 || summary.ToolsAdded != 3 {
		t.Fatalf("unexpected insert counts: %+v", summary)
	}

	ctx := context.Background()
	collect, err := store.FindStageByName(ctx, "Collect")
	if err != nil || collect == nil {
		t.Fatalf("FindStageByName: %v %v", collect, err)
	}
	categories, err := store.ListCategories(ctx, collect.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Acquisition" {
		t.Fatalf("unexpected categories: %+v", categories)
	}

	tools, err := store.ListTools(ctx, categories[0].ID)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools linked to Acquisition, got %d", len(tools))
	}
	if tools[0].Name != "ToolA" || tools[1].Name != "ToolB" {
		t.Fatalf("unexpected tools: %+v", tools)
	}
	if !strings.Contains(tools[0].Description, "Acquisition") {
		t.Fatalf("tool description should name the category: %q", tools[0].Description)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	importer, err := seed.NewImporter(store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	if _, err := importer.Import(context.Background(), strings.NewReader(sampleCSV)); err != nil {
		t.Fatalf("first import: %v", err)
	}
	second, err := importer.Import(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.CategoriesAdded != 0 || second.ToolsAdded != 0 {
		t.Fatalf("second import added rows: %+v", second)
	}

	counts, err := store.CountsByTable(context.Background())
	if err != nil {
		t.Fatalf("CountsByTable: %v", err)
	}
	if counts.Categories != 2 || counts.Tools != 3 {
		t.Fatalf("unexpected totals after re-import: %+v", counts)
	}
}

func TestImportNormalizesStageCase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	importer, err := seed.NewImporter(store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	csv := "RESEARCH DATA LIFECYCLE STAGE,TOOL CATEGORY TYPE,DESCRIPTION (1 SENTENCE),EXAMPLES\n" +
		"COLLECT,Sensors,Sensor platforms.,LoggerX\n"
	summary, err := importer.Import(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.RowsSkipped != 0 || summary.CategoriesAdded != 1 {
		t.Fatalf("shouty stage name not matched: %+v", summary)
	}
}

func TestImportRejectsMissingHeader(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	importer, err := seed.NewImporter(store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	if _, err := importer.Import(context.Background(), strings.NewReader("TOOL,NAME\nx,y\n")); err == nil {
		t.Fatal("expected error for missing required columns")
	}
}

func TestImportFileTakesLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "tools.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	importer, err := seed.NewImporter(store, logging.NewNop(), cfg.LockPath())
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	summary, err := importer.ImportFile(context.Background(), csvPath)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if summary.CategoriesAdded != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
