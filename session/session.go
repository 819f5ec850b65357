// Package session ties the engine together for one editing session: the
// product's sides, its canvas state store, the active color selections, and
// a per-side projection that is recomputed whenever the viewport or active
// side changes.
//
// A Session replaces the global editor store of the old admin UI. Each
// open editor constructs its own Session and passes it to the components
// that need it; nothing here is process-wide. Sessions are UI-event-driven
// and not safe for concurrent use.
package session

import (
	"fmt"

	"github.com/google/uuid"

	canvas "github.com/Peace-Corp/modoo-canvas"
	"github.com/Peace-Corp/modoo-canvas/state"
)

// Viewport is the logical size and render scale of the edit canvas.
type Viewport struct {
	Width  float64
	Height float64
	Scale  float64
}

// Session is the state of one product being edited.
type Session struct {
	sides      map[string]canvas.ProductSide
	store      *state.Store
	selections canvas.ColorSelections

	active   string
	viewport Viewport

	// proj is the cached projection for the active side and current
	// viewport. Invalidated on side switch and viewport change so a new
	// side never reuses a projection computed for the previous side.
	proj      canvas.Projection
	projValid bool
}

// Option configures a Session.
type Option func(*Session)

// WithViewport sets the initial viewport (default 600x600 at scale 1).
func WithViewport(v Viewport) Option {
	return func(s *Session) { s.viewport = v }
}

// WithColorSelections seeds the session with persisted color selections.
func WithColorSelections(sel canvas.ColorSelections) Option {
	return func(s *Session) { s.selections = sel }
}

// New opens a session for a product's sides. The first side in the slice
// becomes active.
func New(sides []canvas.ProductSide, opts ...Option) (*Session, error) {
	if len(sides) == 0 {
		return nil, fmt.Errorf("session: product has no sides")
	}

	s := &Session{
		sides:    make(map[string]canvas.ProductSide, len(sides)),
		store:    state.New(),
		active:   sides[0].ID,
		viewport: Viewport{Width: 600, Height: 600, Scale: 1},
	}
	for _, side := range sides {
		s.sides[side.ID] = side
	}
	for _, opt := range opts {
		opt(s)
	}

	canvas.Logger().Info("session opened", "sides", len(sides), "active", s.active)
	return s, nil
}

// Store exposes the session's canvas state store.
func (s *Session) Store() *state.Store { return s.store }

// ActiveSide returns the side currently being edited.
func (s *Session) ActiveSide() canvas.ProductSide { return s.sides[s.active] }

// SwitchSide changes the active side, discarding the previous side's
// cached projection. Reports canvas.ErrUnknownSide for ids outside the
// product.
func (s *Session) SwitchSide(sideID string) error {
	if _, ok := s.sides[sideID]; !ok {
		return fmt.Errorf("switch to %q: %w", sideID, canvas.ErrUnknownSide)
	}
	if sideID == s.active {
		return nil
	}
	s.active = sideID
	s.projValid = false
	canvas.Logger().Info("side switched", "side", sideID)
	return nil
}

// SetViewport updates the canvas size/scale and invalidates the cached
// projection.
func (s *Session) SetViewport(v Viewport) {
	s.viewport = v
	s.projValid = false
}

// Projection returns the projection for the active side at the current
// viewport, computing it on first use after a side or viewport change.
func (s *Session) Projection() canvas.Projection {
	if !s.projValid {
		s.proj = canvas.NewProjection(s.ActiveSide(), s.viewport.Scale, s.viewport.Width, s.viewport.Height)
		s.projValid = true
	}
	return s.proj
}

// ResolveColor resolves the effective color of a mockup part on the active
// side.
func (s *Session) ResolveColor(partName string) string {
	return s.selections.Resolve(s.active, partName)
}

// SetColorSelections replaces the session's color selections, e.g. after a
// color-picker interaction writes a new document.
func (s *Session) SetColorSelections(sel canvas.ColorSelections) {
	s.selections = sel
}

// AddLayer places a layer on the active side. Geometry given in
// canvas-pixel space (a drop or drag position) is converted to
// print-area-relative space before storage; pass relative=true when the
// geometry is already relative (e.g. a computed placement).
func (s *Session) AddLayer(l canvas.Layer, relative bool) canvas.Layer {
	if l.ObjectID == "" {
		l.ObjectID = uuid.NewString()
	}
	if !relative {
		l.Geometry = s.Projection().GeometryToPrintRelative(l.Geometry)
	}
	return s.store.Add(s.active, l)
}

// MoveLayer updates a layer's position from a canvas-pixel drag location.
func (s *Session) MoveLayer(objectID string, canvasPos canvas.Point) (canvas.Layer, error) {
	rel := s.Projection().ToPrintRelative(canvasPos)
	return s.store.Update(s.active, objectID, state.Patch{Left: &rel.X, Top: &rel.Y})
}

// Snapshot serializes the complete canvas_state document synchronously.
// Callers hand the bytes to the (fire-and-forget) persistence layer; a
// slow or failed save can never observe a half-mutated state because the
// snapshot is fully materialized before any I/O begins.
func (s *Session) Snapshot() ([]byte, error) {
	return s.store.MarshalState()
}

// Close discards the session's render-related state. The store survives
// until the session itself is garbage; in-flight asset loads may complete
// and are ignored.
func (s *Session) Close() {
	s.projValid = false
	canvas.Logger().Info("session closed", "active", s.active)
}
