// Package anchor computes default logo placements from named presets.
//
// A preset is a pure function of the print area's size and the logo's
// native aspect ratio; the same inputs always produce the same placement.
// Placements are expressed in print-area-relative space, so one computed
// placement renders identically at every scale and across every product a
// partner-mall batch applies it to.
package anchor

import (
	"errors"
	"fmt"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

// Name identifies a placement preset.
type Name string

// The supported presets.
const (
	LeftChest  Name = "left-chest"
	RightChest Name = "right-chest"
	Center     Name = "center"
)

// Errors reported by Apply.
var (
	ErrUnknownAnchor  = errors.New("anchor: unknown anchor name")
	ErrInvalidLogo    = errors.New("anchor: logo dimensions must be positive")
	ErrEmptyPrintArea = errors.New("anchor: print area has no size")
)

// maxFraction caps the placed logo at this fraction of the print area on
// each axis; the tighter axis wins and aspect ratio is preserved.
const maxFraction = 0.2

// Placement is a logo's position and size in print-area-relative space,
// plus the preset that produced it (empty for manual placements).
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Anchor Name    `json:"anchor,omitempty"`
}

// Placements is the logo_placements document: one placement per side.
type Placements map[string]Placement

// preset describes one anchor: the position as a fraction of the print
// area, and whether the fraction addresses the logo's center or its
// top-left corner. The chest presets anchor the top-left corner; center
// anchors the middle. The asymmetry is part of the persisted contract.
type preset struct {
	fx, fy   float64
	centered bool
}

var presets = map[Name]preset{
	LeftChest:  {fx: 0.15, fy: 0.15},
	RightChest: {fx: 0.65, fy: 0.15},
	Center:     {fx: 0.5, fy: 0.5, centered: true},
}

// Apply computes the placement for a named preset.
//
// printArea supplies the width and height in the side's native units (the
// origin is irrelevant in relative space). logoWidth and logoHeight are the
// logo asset's native pixel dimensions. Apply is pure: calling it twice
// with the same inputs yields identical placements.
func Apply(name Name, printArea canvas.Rect, logoWidth, logoHeight float64) (Placement, error) {
	p, ok := presets[name]
	if !ok {
		return Placement{}, fmt.Errorf("%w: %q", ErrUnknownAnchor, name)
	}
	if logoWidth <= 0 || logoHeight <= 0 {
		return Placement{}, ErrInvalidLogo
	}
	if printArea.IsEmpty() {
		return Placement{}, ErrEmptyPrintArea
	}

	scale := min(
		maxFraction*printArea.Width/logoWidth,
		maxFraction*printArea.Height/logoHeight,
	)
	w := logoWidth * scale
	h := logoHeight * scale

	x := p.fx * printArea.Width
	y := p.fy * printArea.Height
	if p.centered {
		x -= w / 2
		y -= h / 2
	}

	return Placement{X: x, Y: y, Width: w, Height: h, Anchor: name}, nil
}

// Names returns the supported preset names in display order.
func Names() []Name {
	return []Name{LeftChest, RightChest, Center}
}

// Layer converts a placement into an image design layer for the logo
// asset, ready to be added to a canvas state store.
func (p Placement) Layer(logoURL string, logoWidth, logoHeight float64) canvas.Layer {
	l := canvas.NewImageLayer(logoURL, logoWidth, logoHeight)
	l.Left = p.X
	l.Top = p.Y
	if logoWidth > 0 {
		l.ScaleX = p.Width / logoWidth
	}
	if logoHeight > 0 {
		l.ScaleY = p.Height / logoHeight
	}
	return l
}
