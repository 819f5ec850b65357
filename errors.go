package canvas

import "errors"

// Sentinel errors shared across the engine's packages.
// Mutating operations on unknown identity report these; geometric
// projection and color resolution never fail (they degrade instead).
var (
	// ErrLayerNotFound is reported when an objectId does not match any
	// layer on the addressed side. The store is unchanged.
	ErrLayerNotFound = errors.New("canvas: layer not found")

	// ErrUnknownSide is reported when a side id is not part of the
	// product being edited.
	ErrUnknownSide = errors.New("canvas: unknown side")
)
