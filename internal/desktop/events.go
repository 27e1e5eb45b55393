package desktop

import (
	"github.com/1broseidon/deskwm/internal/eventlog"
	"github.com/1broseidon/deskwm/internal/platform"
)

// HandlePointer routes one mouse or touch event. Down inside a window
// activates it and may start a drag (title bar) or a resize (handle);
// move updates the gesture; up and cancel always end it.
func (s *Shell) HandlePointer(ev platform.PointerEvent) {
	switch ev.Kind {
	case platform.PointerDown:
		s.pointerDown(ev)
	case platform.PointerMove:
		s.pointerMove(ev)
	case platform.PointerUp, platform.PointerCancel:
		s.endGesture(ev.Kind)
	}
}

// Gesture returns the interaction context in progress.
func (s *Shell) Gesture() InteractionContext {
	return s.gesture
}

func (s *Shell) pointerDown(ev platform.PointerEvent) {
	p, ok := ev.Position()
	if !ok || ev.Target == nil {
		return
	}
	if !s.gesture.Idle() {
		s.log.Debug("pointer down ignored during gesture", "mode", s.gesture.Mode.String())
		return
	}
	winEl := platform.FindAncestor(ev.Target, platform.WithClass("window"))
	if winEl == nil {
		return
	}
	w, ok := s.window("pointer", winEl.ID())
	if !ok || !w.Visible {
		return
	}

	if rz := platform.FindAncestor(ev.Target, platform.WithClass("resizer")); rz != nil {
		name, _ := rz.Attr("data-dir")
		if dir, ok := ParseDirection(name); ok {
			s.beginResize(w, winEl, dir, p)
			return
		}
	}

	titleBar := platform.FindAncestor(ev.Target, platform.WithClass("title-bar"))
	if titleBar != nil && platform.Closest(ev.Target, "button") == nil && !w.Maximized {
		s.beginDrag(w, winEl, p)
		return
	}

	s.Focus(w.ID)
}

func (s *Shell) beginDrag(w *Window, el platform.Element, p platform.Point) {
	s.Focus(w.ID)
	b := s.doc.Bounds(el)
	origin := platform.Rect{X: b.X, Y: b.Y, Width: w.Geometry.Width, Height: w.Geometry.Height}
	if s.interact.Begin(&s.gesture, Dragging, w.ID, 0, p, origin) {
		s.log.Debug("drag started", "window", w.ID, "x", p.X, "y", p.Y)
	}
}

func (s *Shell) beginResize(w *Window, el platform.Element, dir Direction, p platform.Point) {
	s.Focus(w.ID)
	origin := s.doc.Bounds(el)
	if s.interact.Begin(&s.gesture, Resizing, w.ID, dir, p, origin) {
		s.log.Debug("resize started", "window", w.ID, "dir", dir.String())
	}
}

func (s *Shell) pointerMove(ev platform.PointerEvent) {
	if s.gesture.Idle() {
		return
	}
	p, ok := ev.Position()
	if !ok {
		return
	}
	w, ok := s.reg.Get(s.gesture.TargetWindowID)
	if !ok {
		s.gesture.Reset()
		return
	}
	if s.interact.Move(&s.gesture, w, p) {
		s.renderWindow(w)
	}
}

func (s *Shell) endGesture(kind platform.PointerKind) {
	ended := s.interact.End(&s.gesture)
	if ended.Mode == Idle {
		return
	}
	w, ok := s.reg.Get(ended.TargetWindowID)
	if !ok {
		return
	}
	details := []any{"x", w.Geometry.X, "y", w.Geometry.Y, "w", w.Geometry.Width, "h", w.Geometry.Height}
	action := eventlog.ActionDrag
	if ended.Mode == Resizing {
		action = eventlog.ActionResize
		details = append(details, "dir", ended.Direction.String())
	}
	s.log.Debug("gesture ended", "window", w.ID, "mode", ended.Mode.String(), "by", kind.String())
	s.opts.Journal.Log(action, w.ID, details...)
}

// HandleClick routes a click. Window buttons, taskbar items, the start
// button and start entries act on their targets; a double click on a
// desktop icon opens its window; clicks outside the shell chrome count
// as a desktop click.
func (s *Shell) HandleClick(ev platform.ClickEvent) {
	t := ev.Target
	if t == nil {
		return
	}
	if ev.Double {
		if icon := platform.FindAncestor(t, platform.WithClass("desktop-icon")); icon != nil {
			if id, ok := icon.Attr("data-win"); ok && id != "" {
				s.Open(id)
			}
		}
		return
	}

	if s.clickControl(t) {
		return
	}
	if item := platform.Closest(t, ".task-item[data-win]"); item != nil {
		id, _ := item.Attr("data-win")
		s.TaskbarClick(id)
		return
	}
	if platform.Closest(t, "#start-btn") != nil {
		s.ToggleStartMenu()
		return
	}
	if entry := platform.Closest(t, ".start-entry[data-win]"); entry != nil {
		id, _ := entry.Attr("data-win")
		s.Open(id)
		s.DismissStartMenu()
		return
	}
	for _, sel := range []string{".window", ".taskbar", ".desktop-icon", "#start-menu"} {
		if platform.Closest(t, sel) != nil {
			return
		}
	}
	s.DesktopClick()
}

// clickControl dispatches a click on a wired window button through the
// control table.
func (s *Shell) clickControl(t platform.Element) bool {
	for _, cc := range controlClasses {
		btn := platform.FindAncestor(t, platform.WithClass(cc.class))
		if btn == nil {
			continue
		}
		winEl := platform.FindAncestor(btn, platform.WithClass("window"))
		if winEl == nil {
			return false
		}
		id := winEl.ID()
		wired, ok := s.controls[id][cc.ctl]
		if !ok || wired != btn {
			return true
		}
		controlHandlers[cc.ctl](s, id)
		return true
	}
	return false
}
