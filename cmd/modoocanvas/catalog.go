package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

// Catalog is the YAML product catalog the CLI operates on.
type Catalog struct {
	Products []Product `yaml:"products"`
}

type Product struct {
	ID    string       `yaml:"id"`
	Name  string       `yaml:"name"`
	Color string       `yaml:"color,omitempty"`
	Sides []SideConfig `yaml:"sides"`
}

type SideConfig struct {
	ID               string       `yaml:"id"`
	Name             string       `yaml:"name"`
	PrintArea        RectConfig   `yaml:"printArea"`
	Mockup           MockupConfig `yaml:"mockup,omitempty"`
	PrintAreaWidthMm float64      `yaml:"printAreaWidthMm,omitempty"`
}

type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type MockupConfig struct {
	URL    string  `yaml:"url"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func loadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(cat.Products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", path)
	}
	return &cat, nil
}

func (c *Catalog) product(id string) (Product, error) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("product %q not in catalog", id)
}

func (p Product) side(id string) (canvas.ProductSide, error) {
	for _, sc := range p.Sides {
		if sc.ID == id {
			return sc.ProductSide(), nil
		}
	}
	return canvas.ProductSide{}, fmt.Errorf("product %q has no side %q", p.ID, id)
}

func (p Product) productSides() []canvas.ProductSide {
	sides := make([]canvas.ProductSide, 0, len(p.Sides))
	for _, sc := range p.Sides {
		sides = append(sides, sc.ProductSide())
	}
	return sides
}

// ProductSide converts the YAML side definition into the engine's type.
func (sc SideConfig) ProductSide() canvas.ProductSide {
	side := canvas.ProductSide{
		ID:   sc.ID,
		Name: sc.Name,
		PrintArea: canvas.Rect{
			X:      sc.PrintArea.X,
			Y:      sc.PrintArea.Y,
			Width:  sc.PrintArea.Width,
			Height: sc.PrintArea.Height,
		},
	}
	if sc.Mockup.URL != "" {
		side.Mockup = canvas.MockupRef{
			URL:          sc.Mockup.URL,
			NativeWidth:  sc.Mockup.Width,
			NativeHeight: sc.Mockup.Height,
		}
	}
	if sc.PrintAreaWidthMm > 0 {
		side.RealLife = &canvas.RealLifeDimensions{PrintAreaWidthMm: sc.PrintAreaWidthMm}
	}
	return side
}
