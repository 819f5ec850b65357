// Package render composites canvas state into raster artifacts: previews
// at editor scale and production images at full scale.
//
// Rendering is two-phase. Phase one (LoadAssets) resolves every image the
// design references and may hit the network; phase two (Compose) is a pure
// synchronous function of the loaded assets and the projected geometry. The
// split keeps coordinate math independent of load completion order, and a
// consumer that navigates away mid-load simply drops the Assets value.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

// Renderer composes design layers over a product mockup.
type Renderer struct {
	fontData   []byte
	background color.Color

	font *opentype.Font
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFont sets the TTF/OTF data used to draw text layers. The default is
// the Go Regular face; production passes the product's configured font.
func WithFont(data []byte) Option {
	return func(r *Renderer) { r.fontData = data }
}

// WithBackground sets the canvas background color (default white).
func WithBackground(c color.Color) Option {
	return func(r *Renderer) { r.background = c }
}

// New creates a Renderer.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		fontData:   goregular.TTF,
		background: color.White,
	}
	for _, opt := range opts {
		opt(r)
	}

	f, err := opentype.Parse(r.fontData)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}
	r.font = f
	return r, nil
}

// Compose renders one side's layers onto a canvas of the given pixel size.
// Layer geometry is print-area-relative and is projected through proj;
// layers are painted in slice order. Layers whose image asset is missing
// from assets are skipped with a warning. Compose never mutates its inputs.
func (r *Renderer) Compose(proj canvas.Projection, layers []canvas.Layer, assets Assets, selections canvas.ColorSelections, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid canvas size %dx%d", width, height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	side := proj.Side()
	r.drawMockup(dst, proj, assets, selections)

	for _, l := range layers {
		if l.IsSystem() {
			continue
		}
		g := proj.GeometryToCanvasPixel(l.Geometry)
		switch l.Kind {
		case canvas.LayerImage:
			img, ok := assets.Image(l.SourceURL)
			if !ok {
				canvas.Logger().Warn("skipping image layer without asset",
					"side", side.ID, "objectId", l.ObjectID, "asset", l.SourceURL)
				continue
			}
			r.drawImage(dst, img, g)
		case canvas.LayerShape:
			r.drawShape(dst, l, g)
		case canvas.LayerText:
			if err := r.drawText(dst, l, g, proj.Scale()); err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}

// drawMockup paints the centered mockup image tinted with the side's
// resolved body color. Without the asset the canvas background stands in.
func (r *Renderer) drawMockup(dst *image.RGBA, proj canvas.Projection, assets Assets, selections canvas.ColorSelections) {
	side := proj.Side()
	img, ok := assets.Image(side.Mockup.URL)
	if !ok {
		return
	}

	scale := proj.Scale()
	w := int(side.Mockup.NativeWidth * scale)
	h := int(side.Mockup.NativeHeight * scale)
	if w <= 0 || h <= 0 {
		b := img.Bounds()
		w = int(float64(b.Dx()) * scale)
		h = int(float64(b.Dy()) * scale)
	}
	scaled := imaging.Resize(img, w, h, imaging.Lanczos)

	tint := canvas.Hex(selections.Resolve(side.ID, "body"))
	tinted := tintImage(scaled, tint)

	bounds := dst.Bounds()
	left := (bounds.Dx() - w) / 2
	top := (bounds.Dy() - h) / 2
	draw.Draw(dst, image.Rect(left, top, left+w, top+h), tinted, image.Point{}, draw.Over)
}

// drawImage scales, rotates, and paints an image layer.
func (r *Renderer) drawImage(dst *image.RGBA, img image.Image, g canvas.Geometry) {
	w := int(g.EffectiveWidth())
	h := int(g.EffectiveHeight())
	if w <= 0 || h <= 0 {
		return
	}
	scaled := imaging.Resize(img, w, h, imaging.Lanczos)

	var out image.Image = scaled
	if g.Angle != 0 {
		// Layer angles are clockwise; imaging rotates counter-clockwise.
		out = imaging.Rotate(scaled, -g.Angle, color.Transparent)
	}

	b := out.Bounds()
	left := int(g.Left)
	top := int(g.Top)
	draw.Draw(dst, image.Rect(left, top, left+b.Dx(), top+b.Dy()), out, b.Min, draw.Over)
}

// drawShape fills a rectangle or ellipse with the layer's fill color.
func (r *Renderer) drawShape(dst *image.RGBA, l canvas.Layer, g canvas.Geometry) {
	fill := l.Fill
	if fill == "" {
		fill = canvas.DefaultColor
	}
	c := canvas.Hex(fill).Color()

	left, top := int(g.Left), int(g.Top)
	w, h := int(g.EffectiveWidth()), int(g.EffectiveHeight())
	if w <= 0 || h <= 0 {
		return
	}

	switch l.Form {
	case "ellipse":
		rx, ry := float64(w)/2, float64(h)/2
		cx, cy := float64(left)+rx, float64(top)+ry
		for y := top; y < top+h; y++ {
			for x := left; x < left+w; x++ {
				dx := (float64(x) + 0.5 - cx) / rx
				dy := (float64(y) + 0.5 - cy) / ry
				if dx*dx+dy*dy <= 1 {
					dst.Set(x, y, c)
				}
			}
		}
	default:
		draw.Draw(dst, image.Rect(left, top, left+w, top+h),
			image.NewUniform(c), image.Point{}, draw.Over)
	}
}

// drawText paints a text layer with the renderer's face at the layer's
// projected size.
func (r *Renderer) drawText(dst *image.RGBA, l canvas.Layer, g canvas.Geometry, scale float64) error {
	size := l.FontSize * l.ScaleY * scale
	if size <= 0 || l.Text == "" {
		return nil
	}

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("render: face at size %v: %w", size, err)
	}
	defer face.Close()

	fill := l.Fill
	if fill == "" {
		fill = "#000000"
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(canvas.Hex(fill).Color()),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(g.Left * 64),
			Y: fixed.Int26_6(g.Top*64) + face.Metrics().Ascent,
		},
	}
	d.DrawString(l.Text)
	return nil
}

// tintImage multiplies every pixel by the tint color, preserving alpha.
// A white tint is the identity.
func tintImage(img image.Image, tint canvas.RGBA) *image.NRGBA {
	out := imaging.Clone(img)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = uint8(float64(out.Pix[i+0]) * tint.R)
			out.Pix[i+1] = uint8(float64(out.Pix[i+1]) * tint.G)
			out.Pix[i+2] = uint8(float64(out.Pix[i+2]) * tint.B)
		}
	}
	return out
}
