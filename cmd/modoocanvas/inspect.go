package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Peace-Corp/modoo-canvas/state"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <canvas_state.json>",
		Short: "Summarize the layers of a saved canvas_state document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			store := state.New()
			if err := store.UnmarshalState(data); err != nil {
				return fmt.Errorf("parse state: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, sideID := range store.Sides() {
				layers := store.Layers(sideID)
				fmt.Fprintf(out, "side %s: %d layer(s)\n", sideID, len(layers))
				for _, l := range layers {
					fmt.Fprintf(out, "  %-10s %s  at (%.2f, %.2f)  %gx%g",
						l.Kind, l.ObjectID, l.Left, l.Top, l.EffectiveWidth(), l.EffectiveHeight())
					if l.Text != "" {
						fmt.Fprintf(out, "  %q", l.Text)
					}
					if l.SourceURL != "" {
						fmt.Fprintf(out, "  %s", l.SourceURL)
					}
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
}
