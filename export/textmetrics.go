package export

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Measurer computes shaped text widths for SVG export. Fonts are registered
// once per family from raw TTF/OTF data and the parsed font is cached;
// shaping runs through HarfBuzz so advance widths include kerning and
// ligatures, matching what the renderer draws.
//
// A Measurer belongs to one export run and is not safe for concurrent use.
type Measurer struct {
	fonts  map[string]*font.Font
	shaper shaping.HarfbuzzShaper
}

// NewMeasurer creates an empty Measurer.
func NewMeasurer() *Measurer {
	return &Measurer{fonts: make(map[string]*font.Font)}
}

// RegisterFont parses font data and associates it with a family name.
// Registering the same family again replaces the previous font.
func (m *Measurer) RegisterFont(family string, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("register font %q: %w", family, err)
	}
	m.fonts[family] = face.Font
	return nil
}

// Known returns true if a font is registered for the family.
func (m *Measurer) Known(family string) bool {
	_, ok := m.fonts[family]
	return ok
}

// Width returns the advance width in pixels of text shaped with the
// family's font at the given size. The second result is false when the
// family has no registered font; the caller falls back to a geometric
// estimate rather than failing the export.
func (m *Measurer) Width(text, family string, size float64) (float64, bool) {
	f, ok := m.fonts[family]
	if !ok || text == "" || size <= 0 {
		return 0, ok
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      floatToFixed(size),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}
	output := m.shaper.Shape(input)

	var advance fixed.Int26_6
	for _, g := range output.Glyphs {
		advance += g.Advance
	}
	return fixedToFloat(advance), true
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
