package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"maldreth/internal/config"
	"maldreth/internal/lifecycle"
)

func newStagesCommand(ctx *commandContext) *cobra.Command {
	var withCategories bool

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the research data lifecycle stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *lifecycle.Store) error {
				stages, err := store.ListStages(cmd.Context())
				if err != nil {
					return fmt.Errorf("list stages: %w", err)
				}

				out := cmd.OutOrStdout()
				if !withCategories {
					rows := make([][]string, 0, len(stages))
					for _, stage := range stages {
						rows = append(rows, []string{
							strconv.FormatInt(stage.OrderIndex, 10),
							stage.Name,
							stage.Description,
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"#", "Stage", "Description"},
						rows,
						[]columnAlignment{alignRight, alignLeft, alignLeft},
					))
					return nil
				}

				for _, stage := range stages {
					categories, err := store.ListCategories(cmd.Context(), stage.ID)
					if err != nil {
						return fmt.Errorf("list categories for %s: %w", stage.Name, err)
					}
					fmt.Fprintf(out, "%d. %s\n", stage.OrderIndex, stage.Name)
					if len(categories) == 0 {
						fmt.Fprintln(out, "   (no tool categories)")
						continue
					}
					for _, category := range categories {
						tools, err := store.ListTools(cmd.Context(), category.ID)
						if err != nil {
							return fmt.Errorf("list tools for %s: %w", category.Name, err)
						}
						fmt.Fprintf(out, "   %s (%d tools)\n", category.Name, len(tools))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withCategories, "categories", false, "Include tool categories per stage")
	return cmd
}
