package desktop

import (
	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/eventlog"
)

// bringToFront raises and activates id and mirrors the result on the
// taskbar. It clears an outside-click blur.
func (s *Shell) bringToFront(id string) bool {
	if !s.zorder.BringToFront(id) {
		return false
	}
	s.blurred = false
	s.taskbar.SyncActivation(id)
	return true
}

// activateTopmost hands activation to the topmost displayed window after
// the active one went away.
func (s *Shell) activateTopmost() {
	if top := s.zorder.Topmost(); top != nil {
		s.bringToFront(top.ID)
		return
	}
	s.taskbar.SyncActivation("")
}

func (s *Shell) window(op, id string) (*Window, bool) {
	w, ok := s.reg.Get(id)
	if !ok {
		s.log.Debug("unknown window ignored", "op", op, "window", id)
	}
	return w, ok
}

// Open displays id, raises and activates it, and ensures its taskbar item.
func (s *Shell) Open(id string) {
	w, ok := s.window("open", id)
	if !ok {
		return
	}
	shown := !w.Visible
	w.Visible = true
	w.Minimized = false
	s.taskbar.Ensure(w.ID, w.Title)
	s.bringToFront(id)
	s.render()

	if shown {
		s.log.Debug("window opened", "window", id, "z", w.ZIndex)
		s.opts.Journal.Log(eventlog.ActionOpen, id, "z", w.ZIndex)
	}
}

// Close hides id and removes its taskbar item. The entity stays
// registered for a later Open.
func (s *Shell) Close(id string) {
	w, ok := s.window("close", id)
	if !ok || !w.Open() {
		return
	}
	wasActive := w.Active
	w.Visible = false
	w.Minimized = false
	w.Active = false
	s.taskbar.Remove(id)
	s.cancelGestureOn(id)
	if wasActive {
		s.activateTopmost()
	}
	s.render()

	s.log.Debug("window closed", "window", id)
	s.opts.Journal.Log(eventlog.ActionClose, id)
}

// Minimize hides id and clears its taskbar highlight; the taskbar item
// stays.
func (s *Shell) Minimize(id string) {
	w, ok := s.window("minimize", id)
	if !ok || !w.Visible {
		return
	}
	wasActive := w.Active
	w.Visible = false
	w.Minimized = true
	w.Active = false
	s.taskbar.Ensure(w.ID, w.Title)
	s.taskbar.Deactivate(id)
	s.cancelGestureOn(id)
	if wasActive {
		s.activateTopmost()
	}
	s.render()

	s.log.Debug("window minimized", "window", id)
	s.opts.Journal.Log(eventlog.ActionMinimize, id)
}

// Focus raises and activates a displayed window.
func (s *Shell) Focus(id string) {
	w, ok := s.window("focus", id)
	if !ok || !w.Visible {
		return
	}
	wasActive := w.Active && !s.blurred
	s.bringToFront(id)
	s.render()
	if !wasActive {
		s.opts.Journal.Log(eventlog.ActionFocus, id, "z", w.ZIndex)
	}
}

// ToggleMaximize maximizes or restores id. Windows declared with
// data-maximizable="false" are left alone.
func (s *Shell) ToggleMaximize(id string) {
	w, ok := s.window("maximize", id)
	if !ok {
		return
	}
	if !w.Maximizable {
		s.log.Debug("window not maximizable", "window", id)
		return
	}
	s.cancelGestureOn(id)
	maximized := s.max.Toggle(w)
	s.render()

	action := eventlog.ActionRestore
	if maximized {
		action = eventlog.ActionMaximize
	}
	s.log.Debug("window maximize toggled", "window", id, "maximized", maximized)
	s.opts.Journal.Log(action, id,
		"x", w.Geometry.X, "y", w.Geometry.Y, "w", w.Geometry.Width, "h", w.Geometry.Height)
}

// TaskbarClick applies the taskbar button policy for id: a hidden window
// is shown, a displayed inactive window is focused and the active window
// is hidden according to the configured policy.
func (s *Shell) TaskbarClick(id string) TaskbarAction {
	w, ok := s.window("taskbar", id)
	if !ok {
		return TaskbarNone
	}
	if _, has := s.taskbar.Item(id); !has {
		s.log.Debug("window has no taskbar item", "window", id)
		return TaskbarNone
	}

	switch {
	case !w.Visible:
		s.Open(id)
		return TaskbarShown
	case !w.Active || s.blurred:
		s.Focus(id)
		return TaskbarFocused
	case s.opts.ActivePolicy == config.ActivePolicyClose:
		s.Close(id)
		return TaskbarHidden
	default:
		s.Minimize(id)
		return TaskbarHidden
	}
}

// ToggleStartMenu flips the start menu and returns whether it is open.
func (s *Shell) ToggleStartMenu() bool {
	open := s.menu.Toggle()
	s.render()
	s.opts.Journal.Log(eventlog.ActionStartMenu, "", "open", open)
	return open
}

// DismissStartMenu closes the start menu if it is open.
func (s *Shell) DismissStartMenu() {
	if s.menu.Dismiss() {
		s.render()
		s.opts.Journal.Log(eventlog.ActionStartMenu, "", "open", false)
	}
}

// DesktopClick handles a click outside every window, the taskbar, the
// desktop icons and the start menu: window highlights are dropped and the
// start menu is dismissed. Stacking and visibility are unchanged.
func (s *Shell) DesktopClick() {
	s.blurred = true
	s.menu.Dismiss()
	s.render()
	s.log.Debug("desktop click")
}

func (s *Shell) cancelGestureOn(id string) {
	if s.gesture.TargetWindowID == id {
		s.gesture.Reset()
	}
}
