package desktop

import (
	"fmt"

	"github.com/1broseidon/deskwm/internal/platform"
)

// Mode is the phase of the pointer gesture state machine.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// InteractionContext tracks the single gesture in progress. It lives for
// one gesture and is handed to every gesture handler explicitly.
type InteractionContext struct {
	Mode           Mode
	TargetWindowID string
	Direction      Direction
	OriginPointer  platform.Point
	OriginGeometry platform.Rect
}

// Idle reports whether a new gesture may begin.
func (c InteractionContext) Idle() bool {
	return c.Mode == Idle
}

// Reset returns the context to Idle.
func (c *InteractionContext) Reset() {
	*c = InteractionContext{}
}

// Interaction applies gesture moves to window geometry.
type Interaction struct {
	MinSize Size
}

// Begin starts a gesture on window id. It fails when another gesture is
// still in progress.
func (in Interaction) Begin(ctx *InteractionContext, mode Mode, id string, dir Direction, pointer platform.Point, origin platform.Rect) bool {
	if !ctx.Idle() || mode == Idle {
		return false
	}
	*ctx = InteractionContext{
		Mode:           mode,
		TargetWindowID: id,
		Direction:      dir,
		OriginPointer:  pointer,
		OriginGeometry: origin,
	}
	return true
}

// Move applies the pointer position to w according to ctx and reports
// whether the geometry was written.
func (in Interaction) Move(ctx *InteractionContext, w *Window, pointer platform.Point) bool {
	if w == nil || w.ID != ctx.TargetWindowID {
		return false
	}
	delta := pointer.Sub(ctx.OriginPointer)
	switch ctx.Mode {
	case Dragging:
		moved := DragGeometry(ctx.OriginGeometry, delta)
		w.Geometry.X = moved.X
		w.Geometry.Y = moved.Y
	case Resizing:
		w.Geometry = ResizeGeometry(ctx.OriginGeometry, ctx.Direction, delta, in.MinSize)
	default:
		return false
	}
	return true
}

// End resets ctx and returns the gesture that was in progress.
func (in Interaction) End(ctx *InteractionContext) InteractionContext {
	ended := *ctx
	ctx.Reset()
	return ended
}

// DragGeometry translates origin by delta.
func DragGeometry(origin platform.Rect, delta platform.Point) platform.Rect {
	origin.X += delta.X
	origin.Y += delta.Y
	return origin
}

// ResizeGeometry resizes origin from the handle dir. The edge opposite the
// handle stays fixed and the result never drops below minSize.
func ResizeGeometry(origin platform.Rect, dir Direction, delta platform.Point, minSize Size) platform.Rect {
	out := origin
	if dir.Has(East) {
		out.Width = max(minSize.Width, origin.Width+delta.X)
	}
	if dir.Has(South) {
		out.Height = max(minSize.Height, origin.Height+delta.Y)
	}
	if dir.Has(West) {
		w := max(minSize.Width, origin.Width-delta.X)
		out.X = origin.X + (origin.Width - w)
		out.Width = w
	}
	if dir.Has(North) {
		h := max(minSize.Height, origin.Height-delta.Y)
		out.Y = origin.Y + (origin.Height - h)
		out.Height = h
	}
	return out
}
