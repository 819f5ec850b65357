// Package mall implements the partner-mall co-branding batch: one partner
// logo applied at a named anchor across every (product, side) pair in a
// catalog, producing the logo_placements document plus a minimal canvas
// state per side containing only the logo layer. The placements are
// print-area-relative, so the same batch output renders correctly on every
// product regardless of mockup size or editor scale.
package mall

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	canvas "github.com/Peace-Corp/modoo-canvas"
	"github.com/Peace-Corp/modoo-canvas/anchor"
	"github.com/Peace-Corp/modoo-canvas/state"
)

// Logo is the partner's logo asset.
type Logo struct {
	URL    string  `json:"url"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Target is one (product, side) pair in the batch.
type Target struct {
	ProductID string
	Side      canvas.ProductSide
}

// Result is the batch output for one target.
type Result struct {
	ProductID string           `json:"productId"`
	SideID    string           `json:"sideId"`
	Placement anchor.Placement `json:"placement"`

	// State is the minimal canvas_state envelope for the side: exactly
	// one image layer carrying the logo.
	State json.RawMessage `json:"state"`
}

// Apply computes the batch. Bad batch parameters (unknown anchor, logo
// without dimensions) fail immediately; an individual product with a
// degenerate print area is skipped with a warning so one broken catalog
// entry cannot sink the rest of the batch.
func Apply(name anchor.Name, logo Logo, targets []Target) ([]Result, error) {
	if logo.Width <= 0 || logo.Height <= 0 {
		return nil, anchor.ErrInvalidLogo
	}
	if _, err := anchor.Apply(name, canvas.Rectangle(0, 0, 1, 1), logo.Width, logo.Height); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		placement, err := anchor.Apply(name, t.Side.PrintArea, logo.Width, logo.Height)
		if err != nil {
			canvas.Logger().Warn("skipping batch target",
				"product", t.ProductID, "side", t.Side.ID, "error", err)
			continue
		}

		layer := placement.Layer(logo.URL, logo.Width, logo.Height)
		layer.ObjectID = uuid.NewString()

		st := state.New()
		st.Add(t.Side.ID, layer)
		envelope, err := st.Serialize(t.Side.ID)
		if err != nil {
			return nil, fmt.Errorf("mall: serialize %s/%s: %w", t.ProductID, t.Side.ID, err)
		}

		results = append(results, Result{
			ProductID: t.ProductID,
			SideID:    t.Side.ID,
			Placement: placement,
			State:     envelope,
		})
	}

	canvas.Logger().Info("logo batch applied",
		"anchor", string(name), "targets", len(targets), "placed", len(results))
	return results, nil
}

// Placements groups batch results into per-product logo_placements
// documents, keyed by product id then side id.
func Placements(results []Result) map[string]anchor.Placements {
	out := make(map[string]anchor.Placements)
	for _, r := range results {
		p, ok := out[r.ProductID]
		if !ok {
			p = make(anchor.Placements)
			out[r.ProductID] = p
		}
		p[r.SideID] = r.Placement
	}
	return out
}
