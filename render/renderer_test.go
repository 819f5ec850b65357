package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

// mapLoader serves fixed images and fails everything else.
type mapLoader map[string]image.Image

func (m mapLoader) Load(_ context.Context, url string) (image.Image, error) {
	img, ok := m[url]
	if !ok {
		return nil, errors.New("no such asset")
	}
	return img, nil
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func renderSide() canvas.ProductSide {
	return canvas.ProductSide{
		ID:        "front",
		PrintArea: canvas.Rect{X: 50, Y: 40, Width: 100, Height: 120},
		Mockup:    canvas.MockupRef{URL: "mockups/front.png", NativeWidth: 200, NativeHeight: 200},
	}
}

func TestComposeEmptyDesign(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	proj := canvas.NewProjection(renderSide(), 1, 200, 200)
	img, err := r.Compose(proj, nil, Assets{}, nil, 200, 200)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 200 || got.Dy() != 200 {
		t.Errorf("bounds = %v, want 200x200", got)
	}
	if got := img.At(100, 100); !sameColor(got, color.White) {
		t.Errorf("background = %v, want white", got)
	}
}

func TestComposeInvalidSize(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Compose(canvas.Projection{}, nil, Assets{}, nil, 0, 100); err == nil {
		t.Error("Compose should reject a zero-width canvas")
	}
}

func TestComposeShapeLayerProjected(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	side := renderSide()
	proj := canvas.NewProjection(side, 1, 200, 200)

	shape := canvas.NewShapeLayer("rect", 20, 20)
	shape.Fill = "#FF0000"
	shape.Left = 10 // print-area-relative
	shape.Top = 10

	img, err := r.Compose(proj, []canvas.Layer{shape}, Assets{}, nil, 200, 200)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Print area origin is (50, 40) on a 200x200 canvas at scale 1, so the
	// shape covers canvas (60,50)-(80,70).
	if got := img.At(70, 60); !sameColor(got, color.NRGBA{R: 255, A: 255}) {
		t.Errorf("inside shape = %v, want red", got)
	}
	if got := img.At(55, 45); !sameColor(got, color.White) {
		t.Errorf("outside shape = %v, want white", got)
	}
}

func TestComposeMissingImageAssetSkipped(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l := canvas.NewImageLayer("uploads/gone.png", 40, 40)
	proj := canvas.NewProjection(renderSide(), 1, 200, 200)
	img, err := r.Compose(proj, []canvas.Layer{l}, Assets{}, nil, 200, 200)
	if err != nil {
		t.Fatalf("Compose should not fail on a missing asset: %v", err)
	}
	if img == nil {
		t.Fatal("Compose returned nil image")
	}
}

func TestComposeImageLayer(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	side := renderSide()
	loader := mapLoader{"uploads/blue.png": solidImage(40, 40, color.NRGBA{B: 255, A: 255})}

	l := canvas.NewImageLayer("uploads/blue.png", 40, 40)
	l.Left = 0
	l.Top = 0

	assets := LoadAssets(context.Background(), loader, side, []canvas.Layer{l})
	if assets.Len() != 1 {
		t.Fatalf("assets = %d, want 1 (mockup load fails, layer loads)", assets.Len())
	}

	proj := canvas.NewProjection(side, 1, 200, 200)
	img, err := r.Compose(proj, []canvas.Layer{l}, assets, nil, 200, 200)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Layer occupies canvas (50,40)-(90,80).
	if got := img.At(70, 60); !sameColor(got, color.NRGBA{B: 255, A: 255}) {
		t.Errorf("inside image layer = %v, want blue", got)
	}
}

func TestComposeTextLayerDrawsInk(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l := canvas.NewTextLayer("Modoo", "Go", 32)
	l.Fill = "#000000"
	l.Left = 5
	l.Top = 5

	proj := canvas.NewProjection(renderSide(), 1, 200, 200)
	img, err := r.Compose(proj, []canvas.Layer{l}, Assets{}, nil, 200, 200)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	inked := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !inked; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !sameColor(img.At(x, y), color.White) {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("text layer drew no pixels")
	}
}

func TestTintImage(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	// White tint is the identity.
	white := tintImage(src, canvas.White)
	if got := white.NRGBAAt(0, 0); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("white tint changed pixel: %v", got)
	}

	half := tintImage(src, canvas.RGB(0.5, 0.5, 0.5))
	if got := half.NRGBAAt(0, 0); got.R != 100 || got.G != 50 || got.B != 25 || got.A != 255 {
		t.Errorf("half tint = %v, want (100,50,25,255)", got)
	}
}

func TestLoadAssetsSkipsFailures(t *testing.T) {
	side := renderSide()
	loader := mapLoader{"mockups/front.png": solidImage(200, 200, color.White)}

	layers := []canvas.Layer{
		canvas.NewImageLayer("uploads/ok.png", 10, 10),
		canvas.NewTextLayer("no asset needed", "Go", 12),
	}
	assets := LoadAssets(context.Background(), loader, side, layers)
	if assets.Len() != 1 {
		t.Errorf("assets = %d, want only the mockup", assets.Len())
	}
	if _, ok := assets.Image("uploads/ok.png"); ok {
		t.Error("failed asset should be absent")
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := png.Encode(f, solidImage(4, 4, color.NRGBA{G: 255, A: 255})); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	f.Close()

	img, err := DirLoader{Root: dir}.Load(context.Background(), "logo.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 4 || got.Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", got)
	}

	if _, err := (DirLoader{Root: dir}).Load(context.Background(), "missing.png"); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

// sameColor compares colors in 16-bit channel space.
func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
