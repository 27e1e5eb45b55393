package platform

// PointerKind is the phase of a pointer or touch event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	// PointerCancel covers touchcancel and loss of pointer capture.
	PointerCancel
)

// String returns the string representation of the kind
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParsePointerKind converts a wire name to a PointerKind.
func ParsePointerKind(s string) (PointerKind, bool) {
	switch s {
	case "down", "mousedown", "pointerdown", "touchstart":
		return PointerDown, true
	case "move", "mousemove", "pointermove", "touchmove":
		return PointerMove, true
	case "up", "mouseup", "pointerup", "touchend":
		return PointerUp, true
	case "cancel", "touchcancel", "pointercancel", "lostpointercapture":
		return PointerCancel, true
	}
	return 0, false
}

// Device identifies the input hardware that produced an event.
type Device int

const (
	DeviceMouse Device = iota
	DeviceTouch
)

// PointerEvent is a mouse or touch event as delivered by the adapter.
type PointerEvent struct {
	Kind   PointerKind
	Device Device
	// ClientX and ClientY carry the mouse position.
	ClientX float64
	ClientY float64
	// Touches lists the active touch points of a touch event.
	Touches []Point
	Target  Element
}

// Position unifies mouse and touch coordinates. A touch event reports its
// first active touch point; ok is false when no touch point remains, as
// with a final touchend.
func (e PointerEvent) Position() (p Point, ok bool) {
	if e.Device == DeviceTouch {
		if len(e.Touches) == 0 {
			return Point{}, false
		}
		return e.Touches[0], true
	}
	return Point{X: e.ClientX, Y: e.ClientY}, true
}

// ClickEvent is a click or double click on Target.
type ClickEvent struct {
	Target Element
	Double bool
}
