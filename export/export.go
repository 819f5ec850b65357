// Package export converts stored design geometry into real-world units and
// extracts the per-layer metadata manufacturing needs: physical dimensions,
// text content and fonts, color swatches, and print methods.
package export

import (
	"golang.org/x/text/unicode/norm"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

// Policy selects the default print method per layer kind. A layer's
// explicit printMethod always wins; the policy only fills the gap. The
// defaults match what production uses for each medium: dye-sublimation for
// text, heat transfer for uploaded images, standard print for shapes.
type Policy struct {
	TextDefault  canvas.PrintMethod
	ImageDefault canvas.PrintMethod
	ShapeDefault canvas.PrintMethod
}

// DefaultPolicy returns the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		TextDefault:  canvas.PrintSublimation,
		ImageDefault: canvas.PrintTransfer,
		ShapeDefault: canvas.PrintStandard,
	}
}

// LayerExport is one layer's production metadata.
type LayerExport struct {
	ObjectID    string             `json:"objectId"`
	Kind        string             `json:"kind"`
	PrintMethod canvas.PrintMethod `json:"printMethod"`

	// Physical placement and size inside the print area.
	OffsetXMm float64 `json:"offsetXMm"`
	OffsetYMm float64 `json:"offsetYMm"`
	WidthMm   float64 `json:"widthMm"`
	HeightMm  float64 `json:"heightMm"`
	WidthCm   float64 `json:"widthCm"`
	HeightCm  float64 `json:"heightCm"`

	// Text metadata (text layers only). Content is NFC-normalized so
	// visually identical strings export identically.
	Text       string  `json:"text,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`

	// Normalized color swatches, empty when unset.
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`
}

// Sheet is the production document for one product: per-side layer metadata
// plus the deduplicated swatch list across the whole design.
type Sheet struct {
	Sides    map[string][]LayerExport `json:"sides"`
	Swatches []string                 `json:"swatches"`
}

// Projector converts stored layer geometry into export metadata.
type Projector struct {
	policy Policy
}

// Option configures a Projector.
type Option func(*Projector)

// WithPolicy overrides the print-method defaulting policy.
func WithPolicy(p Policy) Option {
	return func(pr *Projector) { pr.policy = p }
}

// New creates a Projector with the default policy.
func New(opts ...Option) *Projector {
	pr := &Projector{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(pr)
	}
	return pr
}

// Layer converts one layer. renderScale is the scale the geometry was
// captured at: 1 for print-area-relative state (the normal case), or the
// editor scale for legacy pixel-space geometry that bypassed migration.
func (pr *Projector) Layer(side canvas.ProductSide, l canvas.Layer, renderScale float64) LayerExport {
	if renderScale <= 0 {
		renderScale = 1
	}
	mmPerPx := side.MillimetersPerPixel()

	e := LayerExport{
		ObjectID:    l.ObjectID,
		Kind:        l.Kind.String(),
		PrintMethod: pr.method(l),
		OffsetXMm:   l.Left / renderScale * mmPerPx,
		OffsetYMm:   l.Top / renderScale * mmPerPx,
		WidthMm:     l.EffectiveWidth() / renderScale * mmPerPx,
		HeightMm:    l.EffectiveHeight() / renderScale * mmPerPx,
		Fill:        canvas.NormalizeHex(l.Fill),
		Stroke:      canvas.NormalizeHex(l.Stroke),
	}
	e.WidthCm = e.WidthMm / 10
	e.HeightCm = e.HeightMm / 10

	if l.Kind == canvas.LayerText {
		e.Text = norm.NFC.String(l.Text)
		e.FontFamily = l.FontFamily
		e.FontSize = l.FontSize
	}
	return e
}

// Side converts every persisted layer of one side, preserving paint order.
// System layers are skipped.
func (pr *Projector) Side(side canvas.ProductSide, layers []canvas.Layer, renderScale float64) []LayerExport {
	out := make([]LayerExport, 0, len(layers))
	for _, l := range layers {
		if l.IsSystem() {
			continue
		}
		out = append(out, pr.Layer(side, l, renderScale))
	}
	return out
}

// Sheet assembles the production document for a whole product. layersBySide
// is keyed by side id; sides without state produce no section.
func (pr *Projector) Sheet(sides []canvas.ProductSide, layersBySide map[string][]canvas.Layer) Sheet {
	sheet := Sheet{Sides: make(map[string][]LayerExport)}
	var all []canvas.Layer
	for _, side := range sides {
		layers, ok := layersBySide[side.ID]
		if !ok {
			continue
		}
		sheet.Sides[side.ID] = pr.Side(side, layers, 1)
		all = append(all, layers...)
	}
	sheet.Swatches = Swatches(all)
	return sheet
}

// method resolves the effective print method for a layer.
func (pr *Projector) method(l canvas.Layer) canvas.PrintMethod {
	if l.PrintMethod.Valid() {
		return l.PrintMethod
	}
	switch l.Kind {
	case canvas.LayerText:
		return pr.policy.TextDefault
	case canvas.LayerImage:
		return pr.policy.ImageDefault
	default:
		return pr.policy.ShapeDefault
	}
}

// Swatches collects the distinct fill and stroke colors used across a
// design, deduplicated case-insensitively, in first-appearance order.
// Malformed color values are dropped.
func Swatches(layers []canvas.Layer) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(hex string) {
		n := canvas.NormalizeHex(hex)
		if n == "" {
			return
		}
		if _, dup := seen[n]; dup {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	for _, l := range layers {
		if l.IsSystem() {
			continue
		}
		add(l.Fill)
		add(l.Stroke)
	}
	return out
}
