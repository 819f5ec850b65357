package canvas

// MockupRef identifies the mockup image of a product side and its native
// pixel dimensions. The dimensions come from the asset catalog; they are
// zero until the image metadata has been resolved, in which case projection
// falls back to an approximate mapping (see NewProjection).
type MockupRef struct {
	URL          string  `json:"url"`
	NativeWidth  float64 `json:"width"`
	NativeHeight float64 `json:"height"`
}

// RealLifeDimensions relates a side's print area to physical units.
// Only the width is recorded; the pixel grid is assumed square.
type RealLifeDimensions struct {
	PrintAreaWidthMm float64 `json:"printAreaWidthMm"`
}

// ProductSide describes one printable face of a product: its print area in
// the side's native pixel units, the mockup image it is composited over, and
// optionally the print area's real-world size. ProductSide values are
// supplied by the product catalog and are never mutated by the engine.
type ProductSide struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	PrintArea Rect                `json:"printArea"`
	Mockup    MockupRef           `json:"mockup"`
	RealLife  *RealLifeDimensions `json:"realLifeDimensions,omitempty"`
}

// MillimetersPerPixel returns the conversion factor from the side's native
// pixel units to millimeters. When real-world dimensions are unavailable or
// the print area is degenerate, the factor is 1 so that downstream unit math
// degrades to pixel passthrough instead of failing.
func (s ProductSide) MillimetersPerPixel() float64 {
	if s.RealLife == nil || s.RealLife.PrintAreaWidthMm <= 0 || s.PrintArea.Width <= 0 {
		return 1
	}
	return s.RealLife.PrintAreaWidthMm / s.PrintArea.Width
}

// HasMockupMetadata returns true when the mockup's native dimensions are
// known, which is required for the exact (centered-image) projection.
func (s ProductSide) HasMockupMetadata() bool {
	return s.Mockup.NativeWidth > 0 && s.Mockup.NativeHeight > 0
}
