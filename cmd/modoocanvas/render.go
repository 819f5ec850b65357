package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	canvas "github.com/Peace-Corp/modoo-canvas"
	"github.com/Peace-Corp/modoo-canvas/render"
	"github.com/Peace-Corp/modoo-canvas/state"
)

func newRenderCmd() *cobra.Command {
	var (
		catalogPath string
		productID   string
		statePath   string
		assetsDir   string
		width       int
		height      int
		scale       float64
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render preview PNGs of a saved design over its product mockups",
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

			renderer, err := render.New()
			if err != nil {
				return err
			}
			loader := render.DirLoader{Root: assetsDir}

			var selections canvas.ColorSelections
			if prod.Color != "" {
				selections = canvas.ColorSelections{"productColor": prod.Color}
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			for _, sc := range prod.Sides {
				side := sc.ProductSide()
				if !store.Touched(side.ID) {
					continue
				}
				layers := store.Layers(side.ID)
				assets := render.LoadAssets(cmd.Context(), loader, side, layers)
				proj := canvas.NewProjection(side, scale, float64(width), float64(height))

				img, err := renderer.Compose(proj, layers, assets, selections, width, height)
				if err != nil {
					return fmt.Errorf("render side %s: %w", side.ID, err)
				}

				path := filepath.Join(outDir, fmt.Sprintf("%s-%s.png", prod.ID, side.ID))
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := png.Encode(f, img); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "catalog.yaml", "product catalog file")
	cmd.Flags().StringVar(&productID, "product", "", "product id from the catalog")
	cmd.Flags().StringVar(&statePath, "state", "", "canvas_state document")
	cmd.Flags().StringVar(&assetsDir, "assets", ".", "directory asset URLs resolve under")
	cmd.Flags().IntVar(&width, "width", 600, "canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "canvas height in pixels")
	cmd.Flags().Float64Var(&scale, "scale", 1, "render scale")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}
