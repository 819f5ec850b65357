package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	canvas "github.com/Peace-Corp/modoo-canvas"
	"github.com/Peace-Corp/modoo-canvas/export"
	"github.com/Peace-Corp/modoo-canvas/state"
)

func newExportCmd() *cobra.Command {
	var (
		catalogPath string
		productID   string
		statePath   string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Project a saved design into a production sheet (millimeters)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			prod, err := cat.product(productID)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(statePath)
			if err != nil {
				return err
			}
			store := state.New()
			if err := store.UnmarshalState(data); err != nil {
				return fmt.Errorf("parse state: %w", err)
			}

			layersBySide := make(map[string][]canvas.Layer)
			for _, sideID := range store.Sides() {
				layersBySide[sideID] = store.Layers(sideID)
			}

			sheet := export.New().Sheet(prod.productSides(), layersBySide)
			encoded, err := json.MarshalIndent(sheet, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(cmd, outPath, append(encoded, '\n'))
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "catalog.yaml", "product catalog file")
	cmd.Flags().StringVar(&productID, "product", "", "product id from the catalog")
	cmd.Flags().StringVar(&statePath, "state", "", "canvas_state document")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}

// writeOutput writes to the --out file, or the command's stdout when unset.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
