package desktop

import (
	"strconv"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/platform"
)

// Element ids of the shell chrome.
const (
	DesktopID   = "desktop"
	StartBtnID  = "start-btn"
	StartMenuID = "start-menu"
)

// TitleBarID returns the element id of a window's title bar.
func TitleBarID(windowID string) string { return windowID + "-titlebar" }

// ButtonID returns the element id of a window button ("min", "max", "close").
func ButtonID(windowID, kind string) string { return windowID + "-" + kind }

// BodyID returns the element id of a window's content area.
func BodyID(windowID string) string { return windowID + "-body" }

// StartEntryID returns the element id of a window's start-menu entry.
func StartEntryID(windowID string) string { return "start-" + windowID }

// Populate builds the desktop markup for cfg under root: desktop icons,
// the windows, the taskbar with its start button and the hidden start
// menu. The result is what New expects to find.
func Populate(doc platform.Document, root platform.Element, cfg *config.Config) {
	el := func(tag, id, class string) platform.Element {
		e := doc.CreateElement(tag)
		if id != "" {
			e.SetAttr("id", id)
		}
		if class != "" {
			e.SetAttr("class", class)
		}
		return e
	}

	desktop := el("div", DesktopID, "desktop")
	root.AppendChild(desktop)

	for _, icon := range cfg.Icons {
		ic := el("div", icon.ID, "desktop-icon")
		ic.SetAttr("data-win", icon.Window)
		label := el("span", "", "icon-label")
		label.SetText(icon.Label)
		ic.AppendChild(label)
		desktop.AppendChild(ic)
	}

	for _, spec := range cfg.Windows {
		desktop.AppendChild(windowMarkup(spec, el))
	}

	taskbar := el("div", "", "taskbar")
	start := el("button", StartBtnID, "")
	start.SetText("Start")
	taskbar.AppendChild(start)
	taskbar.AppendChild(el("div", "", "task-items"))
	root.AppendChild(taskbar)

	menu := el("div", StartMenuID, "hidden")
	for _, spec := range cfg.Windows {
		entry := el("div", StartEntryID(spec.ID), "start-entry")
		entry.SetAttr("data-win", spec.ID)
		entry.SetText(spec.Title)
		menu.AppendChild(entry)
	}
	root.AppendChild(menu)
}

func windowMarkup(spec config.WindowSpec, el func(tag, id, class string) platform.Element) platform.Element {
	class := "window"
	if spec.Hidden {
		class += " hidden"
	}
	win := el("div", spec.ID, class)
	win.SetAttr("data-title", spec.Title)
	if !spec.IsMaximizable() {
		win.SetAttr("data-maximizable", "false")
	}
	win.SetStyle("left", platform.FormatPx(float64(spec.X)))
	win.SetStyle("top", platform.FormatPx(float64(spec.Y)))
	if spec.Width > 0 {
		win.SetStyle("width", platform.FormatPx(float64(spec.Width)))
	}
	if spec.Height > 0 {
		win.SetStyle("height", platform.FormatPx(float64(spec.Height)))
	}
	if spec.ZIndex != 0 {
		win.SetStyle("z-index", strconv.Itoa(spec.ZIndex))
	}

	bar := el("div", TitleBarID(spec.ID), "title-bar")
	title := el("span", "", "title")
	title.SetText(spec.Title)
	bar.AppendChild(title)

	controls := el("div", "", "controls")
	if spec.IsMinimizable() {
		b := el("button", ButtonID(spec.ID, "min"), "min-btn")
		b.SetText("_")
		controls.AppendChild(b)
	}
	if spec.IsMaximizable() {
		b := el("button", ButtonID(spec.ID, "max"), "max-btn")
		b.SetText("□")
		controls.AppendChild(b)
	}
	if spec.IsClosable() {
		b := el("button", ButtonID(spec.ID, "close"), "close-btn")
		b.SetText("x")
		controls.AppendChild(b)
	}
	bar.AppendChild(controls)
	win.AppendChild(bar)

	body := el("div", BodyID(spec.ID), "window-body")
	body.SetText(spec.Body)
	win.AppendChild(body)
	return win
}
