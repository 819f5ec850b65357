package export

import (
	"encoding/xml"
	"fmt"
	"strings"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

// TextSVG renders a text layer as a standalone SVG document, the
// text_svg_exports artifact attached to production orders. The document's
// size comes from shaped metrics when the layer's font is registered with
// the Measurer, else from the layer's stored geometry.
func TextSVG(l canvas.Layer, m *Measurer) (string, error) {
	if l.Kind != canvas.LayerText {
		return "", fmt.Errorf("text svg: layer %q is %s, not text", l.ObjectID, l.Kind)
	}

	width := l.EffectiveWidth()
	height := l.EffectiveHeight()
	if m != nil {
		if w, ok := m.Width(l.Text, l.FontFamily, l.FontSize); ok && w > 0 {
			width = w * l.ScaleX
		}
	}
	if height <= 0 {
		// Line height approximation when geometry is missing.
		height = l.FontSize * 1.2 * l.ScaleY
	}

	fill := canvas.NormalizeHex(l.Fill)
	if fill == "" {
		fill = canvas.DefaultColor
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		width, height, width, height)
	fmt.Fprintf(&b, `<text x="0" y="%g" font-family=%q font-size="%g" fill=%q>`,
		l.FontSize*l.ScaleY, l.FontFamily, l.FontSize*l.ScaleY, fill)
	if err := xml.EscapeText(&b, []byte(l.Text)); err != nil {
		return "", fmt.Errorf("text svg: %w", err)
	}
	b.WriteString(`</text></svg>`)
	return b.String(), nil
}

// TextSVGs builds the side-keyed text_svg_exports collection for every text
// layer in the design. Layer order within a side is paint order.
func TextSVGs(layersBySide map[string][]canvas.Layer, m *Measurer) (map[string][]string, error) {
	out := make(map[string][]string)
	for sideID, layers := range layersBySide {
		for _, l := range layers {
			if l.Kind != canvas.LayerText {
				continue
			}
			svg, err := TextSVG(l, m)
			if err != nil {
				return nil, err
			}
			out[sideID] = append(out[sideID], svg)
		}
	}
	return out, nil
}
