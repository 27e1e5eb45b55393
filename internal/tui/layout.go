package tui

import (
	"math"
	"sort"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/platform/memdom"
)

const (
	startLabel     = "[Start]"
	maxTaskLabel   = 14
	maxIconLabel   = 12
	minBoxCols     = 12
	minBoxRows     = 3
	buttonCellSpan = 2
)

// Viewport maps terminal cells onto canvas pixels. Rows includes the
// taskbar, which always occupies the last row.
type Viewport struct {
	Cols          int
	Rows          int
	Canvas        desktop.Size
	TaskbarHeight float64
}

// TaskbarRow returns the row of the taskbar.
func (v Viewport) TaskbarRow() int { return v.Rows - 1 }

func (v Viewport) deskRows() int { return max(v.Rows-1, 1) }

func (v Viewport) scale() (sx, sy float64) {
	sx = v.Canvas.Width / float64(max(v.Cols, 1))
	sy = (v.Canvas.Height - v.TaskbarHeight) / float64(v.deskRows())
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	return sx, sy
}

// ToCanvas returns the canvas position of the centre of a cell.
func (v Viewport) ToCanvas(col, row int) (x, y float64) {
	sx, sy := v.scale()
	return (float64(col) + 0.5) * sx, (float64(row) + 0.5) * sy
}

// box is an inclusive cell rectangle.
type box struct {
	left, top, right, bottom int
}

func (b box) contains(col, row int) bool {
	return col >= b.left && col <= b.right && row >= b.top && row <= b.bottom
}

// windowBox returns the cells covered by w. Unset sizes use the natural
// size of the in-memory document.
func (v Viewport) windowBox(w desktop.WindowState) box {
	g := w.Geometry
	if g.Width <= 0 {
		g.Width = memdom.DefaultNaturalWidth
	}
	if g.Height <= 0 {
		g.Height = memdom.DefaultNaturalHeight
	}
	sx, sy := v.scale()
	b := box{
		left: int(math.Floor(g.X / sx)),
		top:  int(math.Floor(g.Y / sy)),
	}
	b.right = max(int(math.Ceil((g.X+g.Width)/sx))-1, b.left+minBoxCols-1)
	b.bottom = max(int(math.Ceil((g.Y+g.Height)/sy))-1, b.top+minBoxRows-1)
	return b
}

// span is a run of cells on one row that belongs to an element.
type span struct {
	id   string
	text string
	row  int
	from int
	to   int
}

func (s span) contains(col, row int) bool {
	return row == s.row && col >= s.from && col <= s.to
}

func newSpan(id, text string, row, from int) span {
	return span{id: id, text: text, row: row, from: from, to: from + len([]rune(text)) - 1}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// taskbarSpans lays out the start button followed by one button per
// taskbar item.
func (v Viewport) taskbarSpans(st desktop.State) []span {
	row := v.TaskbarRow()
	spans := []span{newSpan(desktop.StartBtnID, startLabel, row, 0)}
	col := len(startLabel) + 1
	for _, item := range st.Taskbar {
		s := newSpan(desktop.TaskItemID(item.WindowID), " "+truncate(item.Label, maxTaskLabel)+" ", row, col)
		if s.to >= v.Cols {
			break
		}
		spans = append(spans, s)
		col = s.to + 2
	}
	return spans
}

// menuSpans lays out the start menu panel directly above the start
// button, one entry per window.
func (v Viewport) menuSpans(st desktop.State) []span {
	width := 0
	for _, w := range st.Windows {
		width = max(width, len([]rune(w.Title)))
	}
	width = min(width, v.Cols-2)
	top := v.TaskbarRow() - len(st.Windows)
	var spans []span
	for i, w := range st.Windows {
		row := top + i
		if row < 0 {
			continue
		}
		label := truncate(w.Title, width)
		for len([]rune(label)) < width {
			label += " "
		}
		spans = append(spans, newSpan(desktop.StartEntryID(w.ID), " "+label+" ", row, 0))
	}
	return spans
}

// Scene holds the parts of the desktop a state snapshot does not carry:
// the desktop icons and the window buttons declared by the configuration.
type Scene struct {
	Icons   []config.IconSpec
	windows map[string]config.WindowSpec
}

// NewScene returns the scene declared by cfg.
func NewScene(cfg *config.Config) Scene {
	sc := Scene{windows: make(map[string]config.WindowSpec)}
	if cfg == nil {
		return sc
	}
	sc.Icons = cfg.Icons
	for _, w := range cfg.Windows {
		sc.windows[w.ID] = w
	}
	return sc
}

// buttons returns the button kinds of w in display order.
func (sc Scene) buttons(w desktop.WindowState) []string {
	spec, ok := sc.windows[w.ID]
	var kinds []string
	if !ok || spec.IsMinimizable() {
		kinds = append(kinds, "min")
	}
	if w.Maximizable {
		kinds = append(kinds, "max")
	}
	if !ok || spec.IsClosable() {
		kinds = append(kinds, "close")
	}
	return kinds
}

func (sc Scene) body(id string) string {
	return sc.windows[id].Body
}

// iconSpans lays out the desktop icons down the left edge.
func (sc Scene) iconSpans() []span {
	spans := make([]span, 0, len(sc.Icons))
	for i, ic := range sc.Icons {
		label := ic.Label
		if label == "" {
			label = ic.Window
		}
		spans = append(spans, newSpan(ic.ID, "["+truncate(label, maxIconLabel)+"]", 1+2*i, 1))
	}
	return spans
}

// buttonSpans places the buttons of w at the right end of its title row.
func (sc Scene) buttonSpans(w desktop.WindowState, b box) []span {
	kinds := sc.buttons(w)
	from := b.right - buttonCellSpan*len(kinds)
	spans := make([]span, 0, len(kinds))
	for i, kind := range kinds {
		s := span{
			id:   desktop.ButtonID(w.ID, kind),
			text: buttonGlyph(kind, w.Maximized),
			row:  b.top + 1,
			from: from + i*buttonCellSpan,
		}
		s.to = s.from + buttonCellSpan - 1
		spans = append(spans, s)
	}
	return spans
}

func buttonGlyph(kind string, maximized bool) string {
	switch kind {
	case "min":
		return " _"
	case "max":
		if maximized {
			return " ❐"
		}
		return " □"
	default:
		return " x"
	}
}

// displayStack returns the displayed windows from bottom to top.
func displayStack(st desktop.State) []desktop.WindowState {
	var out []desktop.WindowState
	for _, w := range st.Windows {
		if w.Visible {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}
