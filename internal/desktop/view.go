package desktop

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/1broseidon/deskwm/internal/platform"
)

// setClass makes el's membership of class equal to on.
func setClass(el platform.Element, class string, on bool) {
	if on {
		el.AddClass(class)
	} else {
		el.RemoveClass(class)
	}
}

func sizePx(v float64) string {
	if v == 0 {
		return ""
	}
	return platform.FormatPx(v)
}

// render projects the whole shell state onto the document.
func (s *Shell) render() {
	for _, w := range s.reg.All() {
		s.renderWindow(w)
	}
	s.renderTaskbar()
	s.renderStartMenu()
}

func (s *Shell) renderWindow(w *Window) {
	el := s.doc.ElementByID(w.ID)
	if el == nil {
		return
	}
	setClass(el, "hidden", !w.Visible)
	setClass(el, "active", w.Active && !s.blurred)
	el.SetStyle("z-index", strconv.Itoa(w.ZIndex))
	el.SetStyle("left", platform.FormatPx(w.Geometry.X))
	el.SetStyle("top", platform.FormatPx(w.Geometry.Y))
	el.SetStyle("width", sizePx(w.Geometry.Width))
	el.SetStyle("height", sizePx(w.Geometry.Height))
	if w.Maximized {
		el.SetAttr("data-maximized", "true")
	} else {
		el.RemoveAttr("data-maximized")
	}
}

func (s *Shell) taskButtons() map[string]platform.Element {
	buttons := make(map[string]platform.Element)
	for _, btn := range s.doc.QuerySelectorAll(".task-item[data-win]") {
		id, _ := btn.Attr("data-win")
		if _, dup := buttons[id]; dup {
			if p := btn.Parent(); p != nil {
				p.RemoveChild(btn)
			}
			continue
		}
		buttons[id] = btn
	}
	return buttons
}

// renderTaskbar keeps one button.task-item per taskbar item inside
// .task-items. Without a container the taskbar exists only logically.
func (s *Shell) renderTaskbar() {
	containers := s.doc.QuerySelectorAll(".task-items")
	if len(containers) == 0 {
		return
	}
	container := containers[0]
	buttons := s.taskButtons()

	keep := make(map[string]bool)
	for _, item := range s.taskbar.Items() {
		keep[item.WindowID] = true
		btn, ok := buttons[item.WindowID]
		if !ok {
			btn = s.doc.CreateElement("button")
			btn.SetAttr("class", "task-item")
			btn.SetAttr("data-win", item.WindowID)
			btn.SetAttr("id", TaskItemID(item.WindowID))
			btn.SetText(item.Label)
			container.AppendChild(btn)
		}
		setClass(btn, "active", item.Active)
	}
	for id, btn := range buttons {
		if keep[id] {
			continue
		}
		if p := btn.Parent(); p != nil {
			p.RemoveChild(btn)
		}
	}
}

// TaskItemID returns the element id of a window's taskbar button.
func TaskItemID(windowID string) string {
	return "task-" + windowID
}

func (s *Shell) renderStartMenu() {
	open := s.menu.IsOpen()
	if panel := s.doc.ElementByID("start-menu"); panel != nil {
		setClass(panel, "hidden", !open)
	}
	if btn := s.doc.ElementByID("start-btn"); btn != nil {
		setClass(btn, "active", open)
	}
}

// Reconcile compares the document with the shell state, re-projects the
// state and returns a description of every difference found.
func (s *Shell) Reconcile() []string {
	drift := s.drift()
	s.render()
	return drift
}

func (s *Shell) drift() []string {
	var out []string
	for _, w := range s.reg.All() {
		el := s.doc.ElementByID(w.ID)
		if el == nil {
			out = append(out, fmt.Sprintf("%s: element missing", w.ID))
			continue
		}
		if el.HasClass("hidden") == w.Visible {
			out = append(out, fmt.Sprintf("%s: hidden class does not match visible=%t", w.ID, w.Visible))
		}
		if want := w.Active && !s.blurred; el.HasClass("active") != want {
			out = append(out, fmt.Sprintf("%s: active class does not match highlighted=%t", w.ID, want))
		}
		if got := el.Style("z-index"); got != strconv.Itoa(w.ZIndex) {
			out = append(out, fmt.Sprintf("%s: z-index %q, want %d", w.ID, got, w.ZIndex))
		}
		if got := el.Style("left"); got != platform.FormatPx(w.Geometry.X) {
			out = append(out, fmt.Sprintf("%s: left %q, want %s", w.ID, got, platform.FormatPx(w.Geometry.X)))
		}
		if got := el.Style("top"); got != platform.FormatPx(w.Geometry.Y) {
			out = append(out, fmt.Sprintf("%s: top %q, want %s", w.ID, got, platform.FormatPx(w.Geometry.Y)))
		}
	}

	if len(s.doc.QuerySelectorAll(".task-items")) > 0 {
		buttons := make(map[string]bool)
		for _, btn := range s.doc.QuerySelectorAll(".task-item[data-win]") {
			id, _ := btn.Attr("data-win")
			buttons[id] = true
		}
		for _, item := range s.taskbar.Items() {
			if !buttons[item.WindowID] {
				out = append(out, fmt.Sprintf("%s: taskbar button missing", item.WindowID))
			}
			delete(buttons, item.WindowID)
		}
		stray := make([]string, 0, len(buttons))
		for id := range buttons {
			stray = append(stray, id)
		}
		sort.Strings(stray)
		for _, id := range stray {
			out = append(out, fmt.Sprintf("%s: stray taskbar button", id))
		}
	}

	if panel := s.doc.ElementByID("start-menu"); panel != nil && panel.HasClass("hidden") == s.menu.IsOpen() {
		out = append(out, fmt.Sprintf("start-menu: hidden class does not match open=%t", s.menu.IsOpen()))
	}
	return out
}
