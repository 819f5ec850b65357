package canvas

// Projection maps between canvas-pixel space and print-area-relative space
// for one (ProductSide, renderScale, canvas size) combination.
//
// The mockup image is centered on the canvas at the given render scale, and
// the print area sits at a fixed offset inside the mockup, so the print
// area's canvas position follows from the three inputs. Print-area-relative
// coordinates have their origin at the print area's top-left corner and use
// the side's native pixel units, making them independent of how any
// particular canvas happens to be scaled.
//
// A Projection is an immutable value; compute a new one whenever the side,
// scale, or canvas size changes.
type Projection struct {
	side        ProductSide
	scale       float64
	origin      Point // print-area top-left, canvas-pixel space
	approximate bool
}

// NewProjection computes the projection for a side rendered at renderScale
// on a canvas of the given logical size.
//
// When the mockup's native dimensions are unknown (metadata not yet
// resolved), the centered-image offset cannot be computed and the projection
// degrades to scaling the print-area rectangle directly. The result is
// approximate but usable; Approximate reports the degradation and a warning
// is logged. NewProjection never fails.
func NewProjection(side ProductSide, renderScale, canvasWidth, canvasHeight float64) Projection {
	if renderScale <= 0 {
		renderScale = 1
	}

	p := Projection{side: side, scale: renderScale}

	if !side.HasMockupMetadata() {
		p.origin = side.PrintArea.Origin().Mul(renderScale)
		p.approximate = true
		Logger().Warn("projection missing mockup metadata, using approximate mapping",
			"side", side.ID, "scale", renderScale)
		return p
	}

	imageLeft := canvasWidth/2 - side.Mockup.NativeWidth*renderScale/2
	imageTop := canvasHeight/2 - side.Mockup.NativeHeight*renderScale/2
	p.origin = Point{
		X: imageLeft + side.PrintArea.X*renderScale,
		Y: imageTop + side.PrintArea.Y*renderScale,
	}
	return p
}

// Side returns the product side this projection was computed for.
func (p Projection) Side() ProductSide { return p.side }

// Scale returns the render scale this projection was computed for.
func (p Projection) Scale() float64 { return p.scale }

// Approximate returns true if the projection was computed without mockup
// metadata and positions are best-effort.
func (p Projection) Approximate() bool { return p.approximate }

// PrintAreaBounds returns the print area in canvas-pixel space.
func (p Projection) PrintAreaBounds() Rect {
	return Rect{
		X:      p.origin.X,
		Y:      p.origin.Y,
		Width:  p.side.PrintArea.Width * p.scale,
		Height: p.side.PrintArea.Height * p.scale,
	}
}

// ToPrintRelative converts a canvas-pixel point to print-area-relative
// space. Inverse of ToCanvasPixel.
func (p Projection) ToPrintRelative(pt Point) Point {
	return pt.Sub(p.origin).Div(p.scale)
}

// ToCanvasPixel converts a print-area-relative point to canvas-pixel
// space. Inverse of ToPrintRelative.
func (p Projection) ToCanvasPixel(q Point) Point {
	return q.Mul(p.scale).Add(p.origin)
}

// RectToPrintRelative converts a canvas-pixel rectangle to
// print-area-relative space.
func (p Projection) RectToPrintRelative(r Rect) Rect {
	o := p.ToPrintRelative(r.Origin())
	return Rect{X: o.X, Y: o.Y, Width: r.Width / p.scale, Height: r.Height / p.scale}
}

// RectToCanvasPixel converts a print-area-relative rectangle to
// canvas-pixel space.
func (p Projection) RectToCanvasPixel(r Rect) Rect {
	o := p.ToCanvasPixel(r.Origin())
	return Rect{X: o.X, Y: o.Y, Width: r.Width * p.scale, Height: r.Height * p.scale}
}

// GeometryToPrintRelative converts layer geometry captured in canvas-pixel
// space to print-area-relative space. Scale factors and rotation are
// dimensionless and pass through unchanged.
func (p Projection) GeometryToPrintRelative(g Geometry) Geometry {
	o := p.ToPrintRelative(Point{X: g.Left, Y: g.Top})
	g.Left = o.X
	g.Top = o.Y
	g.Width /= p.scale
	g.Height /= p.scale
	return g
}

// GeometryToCanvasPixel converts stored print-area-relative layer geometry
// to canvas-pixel space for rendering.
func (p Projection) GeometryToCanvasPixel(g Geometry) Geometry {
	o := p.ToCanvasPixel(Point{X: g.Left, Y: g.Top})
	g.Left = o.X
	g.Top = o.Y
	g.Width *= p.scale
	g.Height *= p.scale
	return g
}
