// Package desktop is the window-manager engine of the desktop shell:
// window lifecycle, stacking, maximize, drag/resize gestures, taskbar
// and start-menu synchronization.
package desktop

import (
	"errors"

	"github.com/1broseidon/deskwm/internal/platform"
)

// ErrUnknownWindow is reported by outer surfaces for ids the registry
// does not hold. Core operations ignore unknown ids silently.
var ErrUnknownWindow = errors.New("unknown window")

// DefaultTitle is used for windows that declare no data-title.
const DefaultTitle = "Window"

// Window is one window entity. Entities are created from the document at
// start-up and never destroyed; closing only hides them.
type Window struct {
	ID       string
	Title    string
	Geometry platform.Rect
	// Visible reports whether the window is displayed.
	Visible bool
	// Minimized windows are hidden but keep their taskbar item.
	Minimized     bool
	Active        bool
	Maximized     bool
	Maximizable   bool
	SavedGeometry *platform.Rect
	ZIndex        int
}

// Open reports whether the window is displayed or minimized, i.e. whether
// it owns a taskbar item.
func (w *Window) Open() bool {
	return w.Visible || w.Minimized
}

// Registry owns the window entities in document order.
type Registry struct {
	windows map[string]*Window
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{windows: make(map[string]*Window)}
}

// Add registers w. Duplicate and empty ids are rejected.
func (r *Registry) Add(w *Window) bool {
	if w == nil || w.ID == "" {
		return false
	}
	if _, exists := r.windows[w.ID]; exists {
		return false
	}
	r.windows[w.ID] = w
	r.order = append(r.order, w.ID)
	return true
}

func (r *Registry) Get(id string) (*Window, bool) {
	w, ok := r.windows[id]
	return w, ok
}

// All returns every window in document order.
func (r *Registry) All() []*Window {
	out := make([]*Window, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.windows[id])
	}
	return out
}

// Displayed returns the visible windows in document order.
func (r *Registry) Displayed() []*Window {
	var out []*Window
	for _, id := range r.order {
		if w := r.windows[id]; w.Visible {
			out = append(out, w)
		}
	}
	return out
}

// Active returns the active window, or nil.
func (r *Registry) Active() *Window {
	for _, id := range r.order {
		if w := r.windows[id]; w.Active {
			return w
		}
	}
	return nil
}

func (r *Registry) Len() int {
	return len(r.order)
}
