package canvas

import "fmt"

// LayerKind identifies the type of a design layer.
type LayerKind uint8

// Layer kind constants.
const (
	// LayerText is user-entered text.
	LayerText LayerKind = iota

	// LayerImage is an uploaded or partner-supplied image.
	LayerImage

	// LayerShape is a primitive vector shape (rectangle, ellipse, line).
	LayerShape

	// LayerMockup is the background mockup image. System-only: it is drawn
	// behind every design layer and must never be persisted.
	LayerMockup

	// LayerGuide is an alignment guide overlay. System-only.
	LayerGuide
)

// String returns a human-readable name for the layer kind. The names double
// as the "type" discriminator in the persisted format.
func (k LayerKind) String() string {
	switch k {
	case LayerText:
		return "text"
	case LayerImage:
		return "image"
	case LayerShape:
		return "shape"
	case LayerMockup:
		return "mockup"
	case LayerGuide:
		return "guide"
	default:
		return "unknown"
	}
}

// ParseLayerKind maps a persisted "type" discriminator back to a LayerKind.
func ParseLayerKind(s string) (LayerKind, bool) {
	switch s {
	case "text":
		return LayerText, true
	case "image":
		return LayerImage, true
	case "shape":
		return LayerShape, true
	case "mockup":
		return LayerMockup, true
	case "guide":
		return LayerGuide, true
	default:
		return 0, false
	}
}

// Persistent returns true if layers of this kind belong in serialized
// canvas state. Mockup and guide objects are render-time helpers only.
func (k LayerKind) Persistent() bool {
	return k == LayerText || k == LayerImage || k == LayerShape
}

// MarshalText implements encoding.TextMarshaler.
func (k LayerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *LayerKind) UnmarshalText(b []byte) error {
	kind, ok := ParseLayerKind(string(b))
	if !ok {
		return fmt.Errorf("canvas: unknown layer kind %q", b)
	}
	*k = kind
	return nil
}

// PrintMethod identifies the manufacturing technique for a layer.
type PrintMethod string

// Print method constants. The closed set mirrors what production accepts.
const (
	PrintSublimation PrintMethod = "sublimation"
	PrintTransfer    PrintMethod = "transfer"
	PrintEmbroidery  PrintMethod = "embroidery"
	PrintStandard    PrintMethod = "standard-print"
)

// Valid returns true for a recognized print method.
func (m PrintMethod) Valid() bool {
	switch m {
	case PrintSublimation, PrintTransfer, PrintEmbroidery, PrintStandard:
		return true
	default:
		return false
	}
}

// Geometry is the placement of a layer: top-left position, unscaled size,
// per-axis scale factors, and rotation in degrees. Stored geometry is
// print-area-relative; in-flight geometry during rendering is canvas-pixel.
type Geometry struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Angle  float64 `json:"angle"`
}

// EffectiveWidth returns the visual width (width * scaleX).
func (g Geometry) EffectiveWidth() float64 { return g.Width * g.ScaleX }

// EffectiveHeight returns the visual height (height * scaleY).
func (g Geometry) EffectiveHeight() float64 { return g.Height * g.ScaleY }

// Bounds returns the unrotated bounding rectangle of the geometry.
func (g Geometry) Bounds() Rect {
	return Rect{X: g.Left, Y: g.Top, Width: g.EffectiveWidth(), Height: g.EffectiveHeight()}
}

// Layer is one design element placed on a product side. The Kind
// discriminator selects which of the optional attribute groups is
// meaningful: Text/FontFamily/FontSize for text layers, SourceURL for
// image layers, Form for shape layers.
type Layer struct {
	// ObjectID identifies the layer across saves. Assigned on first add,
	// never regenerated.
	ObjectID string `json:"objectId"`

	// Kind is the layer variant discriminator.
	Kind LayerKind `json:"type"`

	Geometry

	// Fill and Stroke are hex colors, empty when unset.
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`

	// Text attributes (LayerText only).
	Text       string  `json:"text,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`

	// SourceURL references the image asset (LayerImage and LayerMockup).
	SourceURL string `json:"src,omitempty"`

	// Form names the primitive for shape layers ("rect", "ellipse", "line").
	Form string `json:"form,omitempty"`

	// PrintMethod is the explicit production technique, empty when the
	// kind-based default applies (see package export).
	PrintMethod PrintMethod `json:"printMethod,omitempty"`
}

// NewTextLayer creates a text layer with neutral scale.
func NewTextLayer(text, fontFamily string, fontSize float64) Layer {
	return Layer{
		Kind:       LayerText,
		Geometry:   Geometry{ScaleX: 1, ScaleY: 1},
		Text:       text,
		FontFamily: fontFamily,
		FontSize:   fontSize,
	}
}

// NewImageLayer creates an image layer with neutral scale.
func NewImageLayer(sourceURL string, nativeWidth, nativeHeight float64) Layer {
	return Layer{
		Kind: LayerImage,
		Geometry: Geometry{
			Width:  nativeWidth,
			Height: nativeHeight,
			ScaleX: 1,
			ScaleY: 1,
		},
		SourceURL: sourceURL,
	}
}

// NewShapeLayer creates a shape layer with neutral scale.
func NewShapeLayer(form string, width, height float64) Layer {
	return Layer{
		Kind: LayerShape,
		Geometry: Geometry{
			Width:  width,
			Height: height,
			ScaleX: 1,
			ScaleY: 1,
		},
		Form: form,
	}
}

// IsSystem returns true for non-persisted helper layers.
func (l Layer) IsSystem() bool {
	return !l.Kind.Persistent()
}
