package desktop

import "github.com/1broseidon/deskwm/internal/platform"

// Size is a width/height pair in canvas pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Maximizer fits windows to the canvas minus the taskbar reservation.
type Maximizer struct {
	Canvas        Size
	TaskbarHeight float64
}

// Bounds returns the geometry of a maximized window.
func (m Maximizer) Bounds() platform.Rect {
	h := m.Canvas.Height - m.TaskbarHeight
	if h < 0 {
		h = 0
	}
	return platform.Rect{Width: m.Canvas.Width, Height: h}
}

// Toggle maximizes or restores w and reports the new maximized state.
// Maximizing snapshots the current geometry verbatim, unset sizes
// included; restoring reapplies it, or the empty geometry when no
// snapshot exists.
func (m Maximizer) Toggle(w *Window) bool {
	if w.Maximized {
		restored := platform.Rect{}
		if w.SavedGeometry != nil {
			restored = *w.SavedGeometry
		}
		w.Geometry = restored
		w.SavedGeometry = nil
		w.Maximized = false
		return false
	}

	saved := w.Geometry
	w.SavedGeometry = &saved
	w.Geometry = m.Bounds()
	w.Maximized = true
	return true
}

// Refit resizes an already maximized window to the current bounds.
func (m Maximizer) Refit(w *Window) {
	if w.Maximized {
		w.Geometry = m.Bounds()
	}
}
