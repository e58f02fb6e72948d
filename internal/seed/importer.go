package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"maldreth/internal/lifecycle"
	"maldreth/internal/logging"
)

// CSV column headers recognized by the importer. Matching is by header name,
// so column order does not matter.
const (
	columnStage       = "RESEARCH DATA LIFECYCLE STAGE"
	columnCategory    = "TOOL CATEGORY TYPE"
	columnDescription = "DESCRIPTION (1 SENTENCE)"
	columnExamples    = "EXAMPLES"
)

// ErrImportLocked indicates another import currently holds the lock.
var ErrImportLocked = errors.New("another import is in progress")

// Summary reports the outcome of one import run. Skipped rows are those with
// a missing or unknown stage, or an empty category.
type Summary struct {
	RowsTotal       int
	RowsSkipped     int
	CategoriesAdded int
	ToolsAdded      int
}

// Importer loads tool categories and example tools from a CSV export into
// the lifecycle store. Imports are idempotent: re-running over the same file
// adds no rows.
type Importer struct {
	store    *lifecycle.Store
	logger   *slog.Logger
	lockPath string
}

// NewImporter wires an importer against the given store. lockPath names the
// flock file that serializes concurrent imports; empty disables locking.
func NewImporter(store *lifecycle.Store, logger *slog.Logger, lockPath string) (*Importer, error) {
	if store == nil {
		return nil, errors.New("importer requires store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{
		store:    store,
		logger:   logger.With(logging.String(logging.FieldComponent, "seed")),
		lockPath: lockPath,
	}, nil
}

// ImportFile imports the CSV at path under the import lock.
func (i *Importer) ImportFile(ctx context.Context, path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	if i.lockPath != "" {
		lock := flock.New(i.lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return Summary{}, fmt.Errorf("acquire import lock: %w", err)
		}
		if !ok {
			return Summary{}, ErrImportLocked
		}
		defer func() { _ = lock.Unlock() }()
	}

	return i.importRecords(ctx, file)
}

// Import reads CSV data from r without taking the file lock. Intended for
// tests and callers that manage locking themselves.
func (i *Importer) Import(ctx context.Context, r io.Reader) (Summary, error) {
	return i.importRecords(ctx, r)
}

func (i *Importer) importRecords(ctx context.Context, r io.Reader) (Summary, error) {
	runID := uuid.NewString()
	ctx = logging.WithImportRun(ctx, runID)
	logger := logging.WithContext(ctx, i.logger)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Summary{}, errors.New("csv is empty")
		}
		return Summary{}, fmt.Errorf("read csv header: %w", err)
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Earlier rows stay in place; the importer is resumable because
			// every insert is an idempotent upsert.
			return summary, fmt.Errorf("read csv row %d: %w", summary.RowsTotal+2, err)
		}
		summary.RowsTotal++

		row := columns.extract(record)
		if err := i.importRow(ctx, logger, row, &summary); err != nil {
			return summary, err
		}
	}

	logger.Info("csv import finished",
		logging.Int("rows", summary.RowsTotal),
		logging.Int("skipped", summary.RowsSkipped),
		logging.Int("categories_added", summary.CategoriesAdded),
		logging.Int("tools_added", summary.ToolsAdded))

	return summary, nil
}

func (i *Importer) importRow(ctx context.Context, logger *slog.Logger, row rowValues, summary *Summary) error {
	if row.stage == "" || row.category == "" {
		summary.RowsSkipped++
		return nil
	}

	stage, err := i.findStage(ctx, row.stage)
	if err != nil {
		return err
	}
	if stage == nil {
		logger.Warn("skipping row with unknown stage", logging.String("stage", row.stage))
		summary.RowsSkipped++
		return nil
	}

	categoryID, inserted, err := i.store.UpsertCategory(ctx, stage.ID, row.category, row.description)
	if err != nil {
		return err
	}
	if inserted {
		summary.CategoriesAdded++
	}

	for _, toolName := range splitExamples(row.examples) {
		inserted, err := i.store.UpsertTool(ctx, categoryID, toolName,
			fmt.Sprintf("Example tool for %s", row.category))
		if err != nil {
			return err
		}
		if inserted {
			summary.ToolsAdded++
		}
	}
	return nil
}

// findStage resolves a stage by its exact trimmed name, then by a title-cased
// form so exports with shouty or lowercase stage columns still land.
func (i *Importer) findStage(ctx context.Context, name string) (*lifecycle.Stage, error) {
	stage, err := i.store.FindStageByName(ctx, name)
	if err != nil || stage != nil {
		return stage, err
	}
	titled := cases.Title(language.Und).String(strings.ToLower(name))
	if titled == name {
		return nil, nil
	}
	return i.store.FindStageByName(ctx, titled)
}

func splitExamples(examples string) []string {
	parts := strings.Split(examples, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

type columnIndexes struct {
	stage       int
	category    int
	description int
	examples    int
}

type rowValues struct {
	stage       string
	category    string
	description string
	examples    string
}

func resolveColumns(header []string) (columnIndexes, error) {
	indexes := columnIndexes{stage: -1, category: -1, description: -1, examples: -1}
	for idx, name := range header {
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case columnStage:
			indexes.stage = idx
		case columnCategory:
			indexes.category = idx
		case columnDescription:
			indexes.description = idx
		case columnExamples:
			indexes.examples = idx
		}
	}
	if indexes.stage < 0 || indexes.category < 0 {
		return indexes, fmt.Errorf("csv header must include %q and %q columns", columnStage, columnCategory)
	}
	return indexes, nil
}

func (c columnIndexes) extract(record []string) rowValues {
	at := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	return rowValues{
		stage:       at(c.stage),
		category:    at(c.category),
		description: at(c.description),
		examples:    at(c.examples),
	}
}
