package canvas

import "strings"

// DefaultColor is the color applied when no selection resolves.
const DefaultColor = "#FFFFFF"

// FrontSideID is the side id the legacy nested color shape was recorded
// under. The nested fallback only applies to this side.
const FrontSideID = "front"

// ColorSelections is the decoded color_selections payload. The payload has
// shipped in at least three shapes over the system's lifetime:
//
//	{"productColor": "#AABBCC"}                    // flat, product-wide
//	{"front": {"body": "#AABBCC"}}                 // per side, per part
//	{"front": {"front": {"body": "#AABBCC"}}}      // legacy nested
//
// The shapes are not merged; Resolve applies them in a fixed priority order.
type ColorSelections map[string]any

// Resolve returns the effective hex color for a mockup part on a side.
//
// Priority: the flat productColor field, then the per-side part entry, then
// the legacy nested front entry (front side only), then DefaultColor.
// Entries that are absent, non-string, or not valid hex fall through to the
// next rule. Resolve is pure and never fails.
func (cs ColorSelections) Resolve(sideID, partName string) string {
	if cs == nil {
		return DefaultColor
	}

	if c, ok := hexValue(cs["productColor"]); ok {
		return c
	}

	side, _ := cs[sideID].(map[string]any)
	if side != nil {
		if c, ok := hexValue(side[partName]); ok {
			return c
		}
		// Legacy payloads nested the front side's parts one level deeper.
		if sideID == FrontSideID {
			if nested, ok := side[FrontSideID].(map[string]any); ok {
				if c, ok := hexValue(nested[partName]); ok {
					return c
				}
			}
		}
	}

	return DefaultColor
}

// hexValue extracts a usable hex color from a decoded JSON value.
func hexValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" || !IsHex(s) {
		return "", false
	}
	return s, true
}
