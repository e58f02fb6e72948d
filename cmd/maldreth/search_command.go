package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"maldreth/internal/config"
	"maldreth/internal/lifecycle"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tools across all lifecycle stages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			return ctx.withStore(func(cfg *config.Config, store *lifecycle.Store) error {
				results, err := store.SearchTools(cmd.Context(), query)
				if err != nil {
					return fmt.Errorf("search tools: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(results) == 0 {
					fmt.Fprintf(out, "No tools found matching %q\n", query)
					return nil
				}

				rows := make([][]string, 0, len(results))
				for _, result := range results {
					rows = append(rows, []string{
						result.StageName,
						result.CategoryName,
						result.Tool.Name,
						result.Tool.Description,
					})
				}
				fmt.Fprintf(out, "%d tools matching %q\n", len(results), query)
				fmt.Fprintln(out, renderTable(
					[]string{"Stage", "Category", "Tool", "Description"},
					rows,
					nil,
				))
				return nil
			})
		},
	}
}
