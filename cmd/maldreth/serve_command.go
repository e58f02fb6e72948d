package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"maldreth/internal/config"
	"maldreth/internal/layout"
	"maldreth/internal/lifecycle"
	"maldreth/internal/logging"
	"maldreth/internal/preflight"
	"maldreth/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lifecycle explorer web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *lifecycle.Store) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				results := preflight.RunAll(cfg)
				for _, result := range results {
					kind := statusOK
					if !result.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
				}
				if failed := preflight.Failed(results); len(failed) > 0 {
					return fmt.Errorf("%d preflight check(s) failed", len(failed))
				}

				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("init logger: %w", err)
				}

				bind := cfg.Server.Bind
				if bindFlag != "" {
					bind = bindFlag
				}

				srv, err := server.New(store, logger, server.Options{
					Bind:         bind,
					LayoutStyle:  layout.ParseStyle(cfg.Layout.Style),
					LayoutRadius: cfg.Layout.Radius,
				})
				if err != nil {
					return fmt.Errorf("init server: %w", err)
				}

				signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()

				fmt.Fprintf(out, "Serving on http://%s\n", bind)
				return srv.Run(signalCtx)
			})
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Listen address (overrides configuration)")
	return cmd
}
