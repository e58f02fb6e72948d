package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"maldreth/internal/config"
	"maldreth/internal/lifecycle"
	"maldreth/internal/logging"
	"maldreth/internal/preflight"
	"maldreth/internal/seed"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}

	dbCmd.AddCommand(newDBInitCommand(ctx))
	dbCmd.AddCommand(newDBImportCommand(ctx))
	dbCmd.AddCommand(newDBStatusCommand(ctx))

	return dbCmd
}

func newDBInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the lifecycle database",
		Long: "Creates the database schema and the twelve lifecycle stages if they " +
			"do not exist. When seed.csv_path is configured, the tools CSV is " +
			"imported as well. Safe to run repeatedly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *lifecycle.Store) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database ready at %s\n", store.Path())

				if cfg.Seed.CSVPath == "" {
					return nil
				}
				if result := preflight.CheckFileReadable("Seed CSV", cfg.Seed.CSVPath); !result.Passed {
					return fmt.Errorf("seed CSV: %s", result.Detail)
				}
				summary, err := runImport(cmd, ctx, cfg, store, cfg.Seed.CSVPath)
				if err != nil {
					return err
				}
				printImportSummary(cmd, cfg.Seed.CSVPath, summary)
				return nil
			})
		},
	}
}

func newDBImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Import tool categories and tools from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *lifecycle.Store) error {
				summary, err := runImport(cmd, ctx, cfg, store, args[0])
				if err != nil {
					return err
				}
				printImportSummary(cmd, args[0], summary)
				return nil
			})
		},
	}
}

func runImport(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, store *lifecycle.Store, path string) (seed.Summary, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return seed.Summary{}, fmt.Errorf("init logger: %w", err)
	}
	importer, err := seed.NewImporter(store, logger, cfg.LockPath())
	if err != nil {
		return seed.Summary{}, err
	}
	summary, err := importer.ImportFile(cmd.Context(), path)
	if errors.Is(err, seed.ErrImportLocked) {
		return seed.Summary{}, fmt.Errorf("import %s: another import is already running", path)
	}
	if err != nil {
		return seed.Summary{}, fmt.Errorf("import %s: %w", path, err)
	}
	return summary, nil
}

func printImportSummary(cmd *cobra.Command, path string, summary seed.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %s\n", path)
	fmt.Fprintln(out, renderTable(
		[]string{"Rows", "Skipped", "Categories added", "Tools added"},
		[][]string{{
			strconv.Itoa(summary.RowsTotal),
			strconv.Itoa(summary.RowsSkipped),
			strconv.Itoa(summary.CategoriesAdded),
			strconv.Itoa(summary.ToolsAdded),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	))
}

func newDBStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *lifecycle.Store) error {
				counts, err := store.CountsByTable(cmd.Context())
				if err != nil {
					return fmt.Errorf("count rows: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database: %s\n", store.Path())
				fmt.Fprintln(out, renderTable(
					[]string{"Table", "Rows"},
					[][]string{
						{"stages", strconv.FormatInt(counts.Stages, 10)},
						{"connections", strconv.FormatInt(counts.Connections, 10)},
						{"tool_categories", strconv.FormatInt(counts.Categories, 10)},
						{"tools", strconv.FormatInt(counts.Tools, 10)},
					},
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}
