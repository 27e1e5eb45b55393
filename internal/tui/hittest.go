package tui

import (
	"github.com/1broseidon/deskwm/internal/desktop"
)

// HitTest returns the id of the element drawn at a cell, or "" for cells
// that belong to no addressable element (the taskbar background, or
// anything outside the viewport).
func (v Viewport) HitTest(st desktop.State, sc Scene, col, row int) string {
	if col < 0 || row < 0 || col >= v.Cols || row >= v.Rows {
		return ""
	}
	if st.StartMenuOpen {
		for _, s := range v.menuSpans(st) {
			if s.contains(col, row) {
				return s.id
			}
		}
	}
	if row == v.TaskbarRow() {
		for _, s := range v.taskbarSpans(st) {
			if s.contains(col, row) {
				return s.id
			}
		}
		return ""
	}

	stack := displayStack(st)
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		b := v.windowBox(w)
		if b.contains(col, row) {
			return sc.windowHit(w, b, col, row)
		}
	}
	for _, s := range sc.iconSpans() {
		if s.contains(col, row) {
			return s.id
		}
	}
	return desktop.DesktopID
}

// windowHit resolves a cell inside the box of w. The border carries the
// resize handles and the first inner row is the title bar.
func (sc Scene) windowHit(w desktop.WindowState, b box, col, row int) string {
	var dir desktop.Direction
	if row == b.top {
		dir |= desktop.North
	}
	if row == b.bottom {
		dir |= desktop.South
	}
	if col == b.left {
		dir |= desktop.West
	}
	if col == b.right {
		dir |= desktop.East
	}
	if dir != 0 {
		return desktop.ResizerID(w.ID, dir)
	}
	if row == b.top+1 {
		for _, s := range sc.buttonSpans(w, b) {
			if s.contains(col, row) {
				return s.id
			}
		}
		return desktop.TitleBarID(w.ID)
	}
	return desktop.BodyID(w.ID)
}
