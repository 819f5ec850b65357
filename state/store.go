package state

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

// entry is one slot in a side's paint-ordered layer list. Known layers live
// in layer; unrecognized variants keep their raw bytes and are otherwise
// opaque to the store.
type entry struct {
	layer canvas.Layer
	raw   json.RawMessage
}

func (e entry) opaque() bool { return e.raw != nil }

// Store holds the ordered design layers for every touched side of the
// product being edited. The zero side (no map entry) means "untouched";
// an entry with an empty layer list means "emptied".
type Store struct {
	sides map[string][]entry
}

// New creates an empty store.
func New() *Store {
	return &Store{sides: make(map[string][]entry)}
}

// Patch is a partial update to a layer's geometry or style. Nil fields are
// left unchanged.
type Patch struct {
	Left, Top      *float64
	Width, Height  *float64
	ScaleX, ScaleY *float64
	Angle          *float64

	Fill, Stroke *string

	Text       *string
	FontFamily *string
	FontSize   *float64

	PrintMethod *canvas.PrintMethod
}

func (p Patch) apply(l *canvas.Layer) {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&l.Left, p.Left)
	setF(&l.Top, p.Top)
	setF(&l.Width, p.Width)
	setF(&l.Height, p.Height)
	setF(&l.ScaleX, p.ScaleX)
	setF(&l.ScaleY, p.ScaleY)
	setF(&l.Angle, p.Angle)
	setF(&l.FontSize, p.FontSize)

	if p.Fill != nil {
		l.Fill = *p.Fill
	}
	if p.Stroke != nil {
		l.Stroke = *p.Stroke
	}
	if p.Text != nil {
		l.Text = *p.Text
	}
	if p.FontFamily != nil {
		l.FontFamily = *p.FontFamily
	}
	if p.PrintMethod != nil {
		l.PrintMethod = *p.PrintMethod
	}
}

// Add appends a layer to a side's paint order and returns the stored layer.
// A missing ObjectID is assigned here and remains stable for the layer's
// lifetime. Adding marks the side as touched.
func (s *Store) Add(sideID string, l canvas.Layer) canvas.Layer {
	if l.ObjectID == "" {
		l.ObjectID = uuid.NewString()
	}
	s.sides[sideID] = append(s.sides[sideID], entry{layer: l})
	return l
}

// Update applies a partial geometry/style update to the layer with the
// given objectId. Returns the updated layer, or canvas.ErrLayerNotFound if
// the id does not match a known layer on that side; other layers are
// untouched either way.
func (s *Store) Update(sideID, objectID string, p Patch) (canvas.Layer, error) {
	entries, ok := s.sides[sideID]
	if !ok {
		return canvas.Layer{}, canvas.ErrLayerNotFound
	}
	for i := range entries {
		if entries[i].opaque() || entries[i].layer.ObjectID != objectID {
			continue
		}
		p.apply(&entries[i].layer)
		return entries[i].layer, nil
	}
	return canvas.Layer{}, canvas.ErrLayerNotFound
}

// Remove deletes the layer with the given objectId from a side, preserving
// the order of the remaining layers. Removing the last layer leaves the
// side present-but-empty, which serializes differently from untouched.
func (s *Store) Remove(sideID, objectID string) error {
	entries, ok := s.sides[sideID]
	if !ok {
		return canvas.ErrLayerNotFound
	}
	for i := range entries {
		if entries[i].opaque() || entries[i].layer.ObjectID != objectID {
			continue
		}
		s.sides[sideID] = append(entries[:i], entries[i+1:]...)
		return nil
	}
	return canvas.ErrLayerNotFound
}

// Layers returns a copy of a side's known layers in paint order. Opaque
// (unrecognized) entries are skipped; they exist only to be round-tripped.
func (s *Store) Layers(sideID string) []canvas.Layer {
	entries := s.sides[sideID]
	if entries == nil {
		return nil
	}
	out := make([]canvas.Layer, 0, len(entries))
	for _, e := range entries {
		if !e.opaque() {
			out = append(out, e.layer)
		}
	}
	return out
}

// Touched returns true if the side has design state, including the emptied
// case. An untouched side is absent from serialized output entirely.
func (s *Store) Touched(sideID string) bool {
	_, ok := s.sides[sideID]
	return ok
}

// Discard forgets a side entirely, returning it to the untouched state.
// Used when the editor closes a side without saving.
func (s *Store) Discard(sideID string) {
	delete(s.sides, sideID)
}

// Sides returns the touched side ids in sorted order.
func (s *Store) Sides() []string {
	out := make([]string, 0, len(s.sides))
	for id := range s.sides {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
