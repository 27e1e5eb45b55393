package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskwm/internal/desktop"
)

// paint selects the style of a cell.
type paint int

const (
	paintDesk paint = iota
	paintIcon
	paintBorder
	paintBorderActive
	paintTitle
	paintTitleActive
	paintBody
	paintTaskbar
	paintTask
	paintTaskActive
	paintStart
	paintStartOpen
	paintMenu
)

var paintStyles = map[paint]lipgloss.Style{
	paintDesk:         lipgloss.NewStyle().Background(lipgloss.Color("24")),
	paintIcon:         lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("24")).Bold(true),
	paintBorder:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")),
	paintBorderActive: lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Background(lipgloss.Color("236")),
	paintTitle:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("238")),
	paintTitleActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Bold(true),
	paintBody:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	paintTaskbar:      lipgloss.NewStyle().Background(lipgloss.Color("235")),
	paintTask:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("238")),
	paintTaskActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Bold(true),
	paintStart:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Background(lipgloss.Color("235")).Bold(true),
	paintStartOpen:    lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("42")).Bold(true),
	paintMenu:         lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("238")),
}

// frame is a grid of cells, each a rune and a paint.
type frame struct {
	cols   int
	rows   int
	runes  [][]rune
	paints [][]paint
}

func newFrame(cols, rows int) *frame {
	f := &frame{cols: cols, rows: rows}
	f.runes = make([][]rune, rows)
	f.paints = make([][]paint, rows)
	for r := range rows {
		f.runes[r] = []rune(strings.Repeat(" ", cols))
		f.paints[r] = make([]paint, cols)
	}
	return f
}

func (f *frame) put(col, row int, r rune, p paint) {
	if col < 0 || row < 0 || col >= f.cols || row >= f.rows {
		return
	}
	f.runes[row][col] = r
	f.paints[row][col] = p
}

func (f *frame) text(col, row int, s string, p paint) {
	for i, r := range []rune(s) {
		f.put(col+i, row, r, p)
	}
}

func (f *frame) fill(b box, p paint) {
	for row := b.top; row <= b.bottom; row++ {
		for col := b.left; col <= b.right; col++ {
			f.put(col, row, ' ', p)
		}
	}
}

// Plain returns the frame without styling.
func (f *frame) Plain() string {
	lines := make([]string, f.rows)
	for r := range f.rows {
		lines[r] = string(f.runes[r])
	}
	return strings.Join(lines, "\n")
}

// Styled renders each run of equally painted cells with its style.
func (f *frame) Styled() string {
	lines := make([]string, f.rows)
	for r := range f.rows {
		var b strings.Builder
		start := 0
		for c := 1; c <= f.cols; c++ {
			if c < f.cols && f.paints[r][c] == f.paints[r][start] {
				continue
			}
			b.WriteString(paintStyles[f.paints[r][start]].Render(string(f.runes[r][start:c])))
			start = c
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// draw paints the desktop, its windows from bottom to top, the taskbar
// and, when open, the start menu.
func (v Viewport) draw(st desktop.State, sc Scene) *frame {
	f := newFrame(v.Cols, v.Rows)
	f.fill(box{0, 0, v.Cols - 1, v.TaskbarRow() - 1}, paintDesk)
	for _, s := range sc.iconSpans() {
		f.text(s.from, s.row, s.text, paintIcon)
	}
	for _, w := range displayStack(st) {
		drawWindow(f, sc, w, v.windowBox(w))
	}

	row := v.TaskbarRow()
	f.fill(box{0, row, v.Cols - 1, row}, paintTaskbar)
	active := make(map[string]bool)
	for _, item := range st.Taskbar {
		active[desktop.TaskItemID(item.WindowID)] = item.Active
	}
	for _, s := range v.taskbarSpans(st) {
		p := paintTask
		switch {
		case s.id == desktop.StartBtnID && st.StartMenuOpen:
			p = paintStartOpen
		case s.id == desktop.StartBtnID:
			p = paintStart
		case active[s.id]:
			p = paintTaskActive
		}
		f.text(s.from, s.row, s.text, p)
	}

	if st.StartMenuOpen {
		for _, s := range v.menuSpans(st) {
			f.text(s.from, s.row, s.text, paintMenu)
		}
	}
	return f
}

func drawWindow(f *frame, sc Scene, w desktop.WindowState, b box) {
	border, bp, tp := lipgloss.RoundedBorder(), paintBorder, paintTitle
	if w.Highlighted {
		border, bp, tp = lipgloss.ThickBorder(), paintBorderActive, paintTitleActive
	}
	f.fill(b, paintBody)

	horizontal := []rune(border.Top)[0]
	vertical := []rune(border.Left)[0]
	for col := b.left + 1; col < b.right; col++ {
		f.put(col, b.top, horizontal, bp)
		f.put(col, b.bottom, horizontal, bp)
	}
	for row := b.top + 1; row < b.bottom; row++ {
		f.put(b.left, row, vertical, bp)
		f.put(b.right, row, vertical, bp)
	}
	f.put(b.left, b.top, []rune(border.TopLeft)[0], bp)
	f.put(b.right, b.top, []rune(border.TopRight)[0], bp)
	f.put(b.left, b.bottom, []rune(border.BottomLeft)[0], bp)
	f.put(b.right, b.bottom, []rune(border.BottomRight)[0], bp)

	titleRow := b.top + 1
	f.fill(box{b.left + 1, titleRow, b.right - 1, titleRow}, tp)
	buttons := sc.buttonSpans(w, b)
	room := b.right - b.left - 3 - buttonCellSpan*len(buttons)
	f.text(b.left+2, titleRow, truncate(w.Title, room), tp)
	for _, s := range buttons {
		f.text(s.from, s.row, s.text, tp)
	}

	for i, line := range strings.Split(sc.body(w.ID), "\n") {
		row := titleRow + 1 + i
		if row >= b.bottom {
			break
		}
		f.text(b.left+2, row, truncate(line, b.right-b.left-3), paintBody)
	}
}
