package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Peace-Corp/modoo-canvas/anchor"
	"github.com/Peace-Corp/modoo-canvas/mall"
)

func newPlacementsCmd() *cobra.Command {
	var (
		catalogPath string
		anchorName  string
		logoURL     string
		logoWidth   float64
		logoHeight  float64
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "placements",
		Short: "Compute anchored logo placements for every product in a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			var targets []mall.Target
			for _, prod := range cat.Products {
				for _, sc := range prod.Sides {
					targets = append(targets, mall.Target{
						ProductID: prod.ID,
						Side:      sc.ProductSide(),
					})
				}
			}

			logo := mall.Logo{URL: logoURL, Width: logoWidth, Height: logoHeight}
			results, err := mall.Apply(anchor.Name(anchorName), logo, targets)
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(mall.Placements(results), "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(cmd, outPath, append(encoded, '\n'))
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "catalog.yaml", "product catalog file")
	cmd.Flags().StringVar(&anchorName, "anchor", string(anchor.LeftChest), "anchor preset (left-chest, right-chest, center)")
	cmd.Flags().StringVar(&logoURL, "logo", "", "logo image URL")
	cmd.Flags().Float64Var(&logoWidth, "logo-width", 0, "logo width in pixels")
	cmd.Flags().Float64Var(&logoHeight, "logo-height", 0, "logo height in pixels")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("logo")
	_ = cmd.MarkFlagRequired("logo-width")
	_ = cmd.MarkFlagRequired("logo-height")

	return cmd
}
