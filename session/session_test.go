package session

import (
	"bytes"
	"errors"
	"testing"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

func productSides() []canvas.ProductSide {
	return []canvas.ProductSide{
		{
			ID:        "front",
			PrintArea: canvas.Rect{X: 150, Y: 120, Width: 300, Height: 400},
			Mockup:    canvas.MockupRef{NativeWidth: 600, NativeHeight: 700},
		},
		{
			ID:        "back",
			PrintArea: canvas.Rect{X: 100, Y: 100, Width: 250, Height: 350},
			Mockup:    canvas.MockupRef{NativeWidth: 500, NativeHeight: 600},
		},
	}
}

func TestNewRequiresSides(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New with no sides should fail")
	}
}

func TestSwitchSideInvalidatesProjection(t *testing.T) {
	s, err := New(productSides(), WithViewport(Viewport{Width: 600, Height: 700, Scale: 0.5}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	front := s.Projection()
	if err := s.SwitchSide("back"); err != nil {
		t.Fatalf("SwitchSide: %v", err)
	}
	back := s.Projection()

	// The back side has different mockup geometry; reusing the front
	// projection would misplace everything.
	if front.PrintAreaBounds() == back.PrintAreaBounds() {
		t.Error("projection not recomputed after side switch")
	}
	if s.ActiveSide().ID != "back" {
		t.Errorf("ActiveSide = %q, want back", s.ActiveSide().ID)
	}
}

func TestSwitchSideUnknown(t *testing.T) {
	s, err := New(productSides())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SwitchSide("sleeve"); !errors.Is(err, canvas.ErrUnknownSide) {
		t.Errorf("SwitchSide err = %v, want ErrUnknownSide", err)
	}
	if s.ActiveSide().ID != "front" {
		t.Error("failed switch must not change the active side")
	}
}

func TestSetViewportInvalidatesProjection(t *testing.T) {
	s, err := New(productSides(), WithViewport(Viewport{Width: 600, Height: 700, Scale: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := s.Projection()

	s.SetViewport(Viewport{Width: 600, Height: 700, Scale: 0.5})
	after := s.Projection()
	if before.Scale() == after.Scale() {
		t.Error("projection not recomputed after viewport change")
	}
}

func TestAddLayerConvertsCanvasGeometry(t *testing.T) {
	s, err := New(productSides(), WithViewport(Viewport{Width: 600, Height: 700, Scale: 0.5}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Print area origin is (225, 235) at this viewport; a drop at canvas
	// (255, 285) is relative (60, 100).
	l := canvas.NewTextLayer("hi", "Pretendard", 24)
	l.Left = 255
	l.Top = 285
	l.Width = 90
	l.Height = 20

	added := s.AddLayer(l, false)
	if added.ObjectID == "" {
		t.Fatal("AddLayer should assign an objectId")
	}
	if added.Left != 60 || added.Top != 100 {
		t.Errorf("stored position = (%v, %v), want (60, 100)", added.Left, added.Top)
	}
	if added.Width != 180 || added.Height != 40 {
		t.Errorf("stored size = (%v, %v), want (180, 40)", added.Width, added.Height)
	}

	// Already-relative geometry passes through untouched.
	rel := canvas.NewShapeLayer("rect", 10, 10)
	rel.Left = 5
	rel.Top = 5
	stored := s.AddLayer(rel, true)
	if stored.Left != 5 || stored.Top != 5 || stored.Width != 10 {
		t.Errorf("relative layer mutated: %+v", stored)
	}
}

func TestMoveLayer(t *testing.T) {
	s, err := New(productSides(), WithViewport(Viewport{Width: 600, Height: 700, Scale: 0.5}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l := canvas.NewShapeLayer("rect", 10, 10)
	added := s.AddLayer(l, true)

	moved, err := s.MoveLayer(added.ObjectID, canvas.Pt(255, 285))
	if err != nil {
		t.Fatalf("MoveLayer: %v", err)
	}
	if moved.Left != 60 || moved.Top != 100 {
		t.Errorf("moved to (%v, %v), want (60, 100)", moved.Left, moved.Top)
	}

	if _, err := s.MoveLayer("ghost", canvas.Pt(0, 0)); !errors.Is(err, canvas.ErrLayerNotFound) {
		t.Errorf("MoveLayer unknown id err = %v, want ErrLayerNotFound", err)
	}
}

func TestResolveColorFollowsActiveSide(t *testing.T) {
	sel := canvas.ColorSelections{
		"front": map[string]any{"body": "#112233"},
		"back":  map[string]any{"body": "#445566"},
	}
	s, err := New(productSides(), WithColorSelections(sel))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := s.ResolveColor("body"); got != "#112233" {
		t.Errorf("front body = %q, want #112233", got)
	}
	if err := s.SwitchSide("back"); err != nil {
		t.Fatalf("SwitchSide: %v", err)
	}
	if got := s.ResolveColor("body"); got != "#445566" {
		t.Errorf("back body = %q, want #445566", got)
	}
	if got := s.ResolveColor("collar"); got != canvas.DefaultColor {
		t.Errorf("unknown part = %q, want default", got)
	}
}

func TestSnapshotIsolatedFromLaterMutations(t *testing.T) {
	s, err := New(productSides())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.AddLayer(canvas.NewTextLayer("hi", "Pretendard", 20), true)

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	keep := append([]byte(nil), snap...)

	// Mutations after the snapshot must not leak into the captured bytes.
	s.AddLayer(canvas.NewShapeLayer("rect", 5, 5), true)
	if !bytes.Equal(snap, keep) {
		t.Error("snapshot bytes changed after later mutation")
	}

	again, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if bytes.Equal(keep, again) {
		t.Error("second snapshot should reflect the new layer")
	}
}
