package anchor

import (
	"errors"
	"testing"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

func TestApplyLeftChestExample(t *testing.T) {
	// 300x400 print area, 100x50 logo: scale = min(0.6, 1.6) = 0.6,
	// position = (0.15*300, 0.15*400) at the logo's top-left corner.
	got, err := Apply(LeftChest, canvas.Rect{Width: 300, Height: 400}, 100, 50)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := Placement{X: 45, Y: 60, Width: 60, Height: 30, Anchor: LeftChest}
	if got != want {
		t.Errorf("Apply(LeftChest) = %+v, want %+v", got, want)
	}
}

func TestApplyPresets(t *testing.T) {
	printArea := canvas.Rect{Width: 300, Height: 400}

	tests := []struct {
		name  Name
		logoW float64
		logoH float64
		want  Placement
	}{
		{
			// Top-left corner at (0.65*300, 0.15*400).
			name: RightChest, logoW: 100, logoH: 50,
			want: Placement{X: 195, Y: 60, Width: 60, Height: 30, Anchor: RightChest},
		},
		{
			// Center preset anchors the logo's own center at (150, 200).
			name: Center, logoW: 100, logoH: 50,
			want: Placement{X: 120, Y: 185, Width: 60, Height: 30, Anchor: Center},
		},
		{
			// Tall logo: the height constraint is the tighter one.
			// scale = min(0.2*300/50, 0.2*400/200) = min(1.2, 0.4) = 0.4.
			name: LeftChest, logoW: 50, logoH: 200,
			want: Placement{X: 45, Y: 60, Width: 20, Height: 80, Anchor: LeftChest},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, err := Apply(tt.name, printArea, tt.logoW, tt.logoH)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply(%s) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestApplyPreservesAspectRatio(t *testing.T) {
	got, err := Apply(Center, canvas.Rect{Width: 500, Height: 300}, 640, 480)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if ratio := got.Width / got.Height; ratio < 640.0/480-1e-9 || ratio > 640.0/480+1e-9 {
		t.Errorf("aspect ratio changed: placed %vx%v", got.Width, got.Height)
	}
	if got.Width > 0.2*500+1e-9 || got.Height > 0.2*300+1e-9 {
		t.Errorf("placement exceeds 20%% fit: %+v", got)
	}
}

func TestApplyIdempotent(t *testing.T) {
	printArea := canvas.Rect{Width: 300, Height: 400}
	first, err := Apply(Center, printArea, 100, 50)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := Apply(Center, printArea, 100, 50)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if first != second {
		t.Errorf("Apply is not idempotent: %+v vs %+v", first, second)
	}
}

func TestApplyErrors(t *testing.T) {
	printArea := canvas.Rect{Width: 300, Height: 400}

	if _, err := Apply("bottom-hem", printArea, 100, 50); !errors.Is(err, ErrUnknownAnchor) {
		t.Errorf("unknown anchor err = %v, want ErrUnknownAnchor", err)
	}
	if _, err := Apply(Center, printArea, 0, 50); !errors.Is(err, ErrInvalidLogo) {
		t.Errorf("zero logo width err = %v, want ErrInvalidLogo", err)
	}
	if _, err := Apply(Center, canvas.Rect{}, 100, 50); !errors.Is(err, ErrEmptyPrintArea) {
		t.Errorf("empty print area err = %v, want ErrEmptyPrintArea", err)
	}
}

func TestPlacementLayer(t *testing.T) {
	placement, err := Apply(LeftChest, canvas.Rect{Width: 300, Height: 400}, 100, 50)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	l := placement.Layer("partners/logo.png", 100, 50)
	if l.Kind != canvas.LayerImage || l.SourceURL != "partners/logo.png" {
		t.Errorf("layer = %+v", l)
	}
	if l.Left != 45 || l.Top != 60 {
		t.Errorf("layer position = (%v, %v), want (45, 60)", l.Left, l.Top)
	}
	if l.EffectiveWidth() != 60 || l.EffectiveHeight() != 30 {
		t.Errorf("layer effective size = %vx%v, want 60x30",
			l.EffectiveWidth(), l.EffectiveHeight())
	}
}
