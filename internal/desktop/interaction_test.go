package desktop

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/platform"
)

func touch(kind platform.PointerKind, target platform.Element, points ...platform.Point) platform.PointerEvent {
	return platform.PointerEvent{Kind: kind, Device: platform.DeviceTouch, Touches: points, Target: target}
}

func TestDrag_TitleBarMovesWindow(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 10, 10, 200, 150, 0, false),
		win("notes", 300, 300, 200, 150, 20, false),
	)
	bar := byID(t, doc, TitleBarID("calc"))

	s.HandlePointer(mouse(platform.PointerDown, bar, 50, 50))
	if g := s.Gesture(); g.Mode != Dragging || g.TargetWindowID != "calc" {
		t.Fatalf("gesture = %+v, want dragging calc", g)
	}
	if s.State().Active() != "calc" {
		t.Fatalf("drag start should activate calc")
	}
	s.HandlePointer(mouse(platform.PointerMove, doc.Body(), 120, 90))
	s.HandlePointer(mouse(platform.PointerUp, doc.Body(), 120, 90))

	w, _ := s.State().Window("calc")
	want := platform.Rect{X: 80, Y: 50, Width: 200, Height: 150}
	if w.Geometry != want {
		t.Fatalf("geometry = %+v, want %+v", w.Geometry, want)
	}
	el := byID(t, doc, "calc")
	if el.Style("left") != "80px" || el.Style("top") != "50px" {
		t.Fatalf("styles left=%q top=%q", el.Style("left"), el.Style("top"))
	}
	if !s.Gesture().Idle() {
		t.Fatalf("gesture should be idle after release")
	}
	checkInvariants(t, s, doc)
}

func TestResize_NorthWestMovesOppositeEdges(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 0, 0, 200, 150, 0, false),
	)
	handle := byID(t, doc, ResizerID("calc", North|West))

	s.HandlePointer(mouse(platform.PointerDown, handle, 100, 100))
	if g := s.Gesture(); g.Mode != Resizing || g.Direction != North|West {
		t.Fatalf("gesture = %+v, want resizing nw", g)
	}
	s.HandlePointer(mouse(platform.PointerMove, handle, 70, 80))
	s.HandlePointer(mouse(platform.PointerUp, handle, 70, 80))

	w, _ := s.State().Window("calc")
	want := platform.Rect{X: -30, Y: -20, Width: 230, Height: 170}
	if w.Geometry != want {
		t.Fatalf("geometry = %+v, want %+v", w.Geometry, want)
	}
}

func TestResizeGeometry(t *testing.T) {
	origin := platform.Rect{X: 100, Y: 100, Width: 200, Height: 150}
	minSize := Size{Width: 100, Height: 50}

	tests := []struct {
		name  string
		dir   Direction
		delta platform.Point
		want  platform.Rect
	}{
		{"east grows", East, platform.Point{X: 40, Y: 99}, platform.Rect{X: 100, Y: 100, Width: 240, Height: 150}},
		{"south grows", South, platform.Point{X: 99, Y: 30}, platform.Rect{X: 100, Y: 100, Width: 200, Height: 180}},
		{"west shrinks anchored right", West, platform.Point{X: 50}, platform.Rect{X: 150, Y: 100, Width: 150, Height: 150}},
		{"north shrinks anchored bottom", North, platform.Point{Y: 40}, platform.Rect{X: 100, Y: 140, Width: 200, Height: 110}},
		{"east clamps", East, platform.Point{X: -500}, platform.Rect{X: 100, Y: 100, Width: 100, Height: 150}},
		{"south clamps", South, platform.Point{Y: -500}, platform.Rect{X: 100, Y: 100, Width: 200, Height: 50}},
		{"west clamps keeps right edge", West, platform.Point{X: 500}, platform.Rect{X: 200, Y: 100, Width: 100, Height: 150}},
		{"north clamps keeps bottom edge", North, platform.Point{Y: 500}, platform.Rect{X: 100, Y: 200, Width: 200, Height: 50}},
		{"se both", South | East, platform.Point{X: 10, Y: 20}, platform.Rect{X: 100, Y: 100, Width: 210, Height: 170}},
		{"ne mixed clamp", North | East, platform.Point{X: -150, Y: 120}, platform.Rect{X: 100, Y: 200, Width: 100, Height: 50}},
		{"sw", South | West, platform.Point{X: -10, Y: 10}, platform.Rect{X: 90, Y: 100, Width: 210, Height: 160}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeGeometry(origin, tt.dir, tt.delta, minSize)
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if got.Width < minSize.Width || got.Height < minSize.Height {
				t.Fatalf("result below minimum: %+v", got)
			}
		})
	}
}

func TestResize_NaturalSizeOrigin(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("term", 20, 30, 0, 0, 0, false),
	)
	handle := byID(t, doc, ResizerID("term", East))

	s.HandlePointer(mouse(platform.PointerDown, handle, 0, 0))
	s.HandlePointer(mouse(platform.PointerMove, handle, 10, 0))
	s.HandlePointer(mouse(platform.PointerUp, handle, 10, 0))

	w, _ := s.State().Window("term")
	want := platform.Rect{X: 20, Y: 30, Width: doc.NaturalWidth + 10, Height: doc.NaturalHeight}
	if w.Geometry != want {
		t.Fatalf("geometry = %+v, want %+v", w.Geometry, want)
	}
}

func TestTouchAndMouseShareOneStream(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 10, 10, 200, 150, 0, false),
	)
	bar := byID(t, doc, TitleBarID("calc"))

	s.HandlePointer(touch(platform.PointerDown, bar, platform.Point{X: 50, Y: 50}, platform.Point{X: 500, Y: 500}))
	s.HandlePointer(touch(platform.PointerMove, bar, platform.Point{X: 120, Y: 90}))
	// touchend carries no remaining touch points.
	s.HandlePointer(touch(platform.PointerUp, bar))

	w, _ := s.State().Window("calc")
	if w.Geometry.X != 80 || w.Geometry.Y != 50 {
		t.Fatalf("geometry = %+v, want x=80 y=50", w.Geometry)
	}
	if !s.Gesture().Idle() {
		t.Fatalf("touchend should reset the gesture")
	}
}

func TestCancelResetsGesture(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 10, 10, 200, 150, 0, false),
	)
	bar := byID(t, doc, TitleBarID("calc"))

	s.HandlePointer(touch(platform.PointerDown, bar, platform.Point{X: 50, Y: 50}))
	s.HandlePointer(touch(platform.PointerMove, bar, platform.Point{X: 60, Y: 55}))
	s.HandlePointer(touch(platform.PointerCancel, bar))
	if !s.Gesture().Idle() {
		t.Fatalf("cancel should reset the gesture")
	}

	// Moves after the cancel leave the last written geometry alone.
	s.HandlePointer(mouse(platform.PointerMove, bar, 400, 400))
	w, _ := s.State().Window("calc")
	if w.Geometry.X != 20 || w.Geometry.Y != 15 {
		t.Fatalf("geometry = %+v, want x=20 y=15", w.Geometry)
	}

	// Release without a gesture is harmless.
	s.HandlePointer(mouse(platform.PointerUp, bar, 0, 0))
	if !s.Gesture().Idle() {
		t.Fatalf("gesture should stay idle")
	}
}

func TestGestureOnlyStartsWhenIdle(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 10, 10, 200, 150, 1, false),
		win("notes", 300, 300, 200, 150, 2, false),
	)
	s.HandlePointer(mouse(platform.PointerDown, byID(t, doc, TitleBarID("calc")), 50, 50))
	s.HandlePointer(mouse(platform.PointerDown, byID(t, doc, ResizerID("notes", South)), 400, 450))

	g := s.Gesture()
	if g.Mode != Dragging || g.TargetWindowID != "calc" {
		t.Fatalf("gesture = %+v, want drag on calc", g)
	}
	if s.State().Active() != "calc" {
		t.Fatalf("second pointer down should be ignored")
	}
}

func TestDragDisallowedWhileMaximized(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 10, 10, 200, 150, 1, false),
		win("notes", 300, 300, 200, 150, 2, false),
	)
	s.ToggleMaximize("calc")

	s.HandlePointer(mouse(platform.PointerDown, byID(t, doc, TitleBarID("calc")), 50, 50))
	if !s.Gesture().Idle() {
		t.Fatalf("maximized window should not start a drag")
	}
	if s.State().Active() != "calc" {
		t.Fatalf("pointer down should still activate calc")
	}
}

func TestPointerDown_ButtonsAndBodyOnlyActivate(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 10, 10, 200, 150, 1, false),
		win("notes", 300, 300, 200, 150, 2, false),
	)

	s.HandlePointer(mouse(platform.PointerDown, byID(t, doc, ButtonID("calc", "close")), 50, 50))
	if !s.Gesture().Idle() {
		t.Fatalf("title-bar buttons should not start a drag")
	}
	if s.State().Active() != "calc" {
		t.Fatalf("pointer down on a button should activate its window")
	}
	s.HandlePointer(mouse(platform.PointerUp, doc.Body(), 50, 50))

	s.HandlePointer(mouse(platform.PointerDown, byID(t, doc, "notes-body"), 350, 350))
	if !s.Gesture().Idle() || s.State().Active() != "notes" {
		t.Fatalf("body press should only activate notes")
	}
	checkInvariants(t, s, doc)
}

func TestCloseDuringDragResetsGesture(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 10, 10, 200, 150, 0, false),
	)
	s.HandlePointer(mouse(platform.PointerDown, byID(t, doc, TitleBarID("calc")), 50, 50))
	s.Close("calc")
	if !s.Gesture().Idle() {
		t.Fatalf("closing the target should end the gesture")
	}
}

func TestToggleMaximizeDuringResizeResetsGesture(t *testing.T) {
	s, doc := newTestShell(t, config.ActivePolicyMinimize,
		win("calc", 10, 10, 200, 150, 0, false),
	)
	handle := byID(t, doc, ResizerID("calc", South|East))

	s.HandlePointer(mouse(platform.PointerDown, handle, 210, 160))
	if g := s.Gesture(); g.Mode != Resizing {
		t.Fatalf("gesture = %+v, want resizing", g)
	}
	s.ToggleMaximize("calc")
	if !s.Gesture().Idle() {
		t.Fatalf("maximizing the target should end the resize")
	}

	s.HandlePointer(mouse(platform.PointerMove, handle, 120, 70))
	s.HandlePointer(mouse(platform.PointerUp, handle, 120, 70))
	w, _ := s.State().Window("calc")
	if !w.Maximized || w.Geometry != s.max.Bounds() {
		t.Fatalf("window = %+v, want maximized at %+v", w, s.max.Bounds())
	}
}

func TestParseDirection(t *testing.T) {
	for _, dir := range HandleDirections() {
		got, ok := ParseDirection(dir.String())
		if !ok || got != dir {
			t.Errorf("ParseDirection(%q) = %v, %t", dir.String(), got, ok)
		}
	}
	if d, ok := ParseDirection("NW"); !ok || d != North|West {
		t.Errorf("upper case should parse")
	}
	for _, bad := range []string{"", "x", "ns", "ew", "nn", "nse"} {
		if _, ok := ParseDirection(bad); ok {
			t.Errorf("ParseDirection(%q) should fail", bad)
		}
	}
}
