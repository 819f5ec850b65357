package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "modoocanvas",
		Short: "Inspect and project design canvas state for print products",
		Long: `modoocanvas works with saved canvas_state documents: it can summarize
their contents, project layer geometry into production millimeters,
compute anchored logo placements for partner-mall products, and render
preview images of a design composed over its product mockup.

Product and side definitions are read from a YAML catalog file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine, only explicit files matter.
			_ = godotenv.Load()

			if verbose {
				canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newInspectCmd(),
		newExportCmd(),
		newPlacementsCmd(),
		newRenderCmd(),
	)

	return cmd
}
