package tui

import (
	"math"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/platform/memdom"
)

func center(w desktop.WindowState) (x, y float64) {
	g := w.Geometry
	if g.Width <= 0 {
		g.Width = memdom.DefaultNaturalWidth
	}
	if g.Height <= 0 {
		g.Height = memdom.DefaultNaturalHeight
	}
	return g.X + g.Width/2, g.Y + g.Height/2
}

// neighbor returns the displayed window nearest to current in direction
// dir, comparing window centres by Manhattan distance. With nothing in
// that direction it wraps to the window furthest the other way, preferring
// the one best aligned with current. It returns "" when there is no other
// displayed window.
func neighbor(st desktop.State, current string, dir desktop.Direction) string {
	cur, ok := st.Window(current)
	if !ok || !cur.Visible {
		return nextWindow(st, current)
	}
	cx, cy := center(cur)

	best, bestDist := "", math.Inf(1)
	for _, w := range st.Windows {
		if !w.Visible || w.ID == current {
			continue
		}
		x, y := center(w)
		ahead := false
		switch dir {
		case desktop.North:
			ahead = y < cy
		case desktop.South:
			ahead = y > cy
		case desktop.West:
			ahead = x < cx
		case desktop.East:
			ahead = x > cx
		}
		if !ahead {
			continue
		}
		if d := math.Abs(x-cx) + math.Abs(y-cy); d < bestDist {
			best, bestDist = w.ID, d
		}
	}
	if best != "" {
		return best
	}

	bestScore := math.Inf(-1)
	for _, w := range st.Windows {
		if !w.Visible || w.ID == current {
			continue
		}
		x, y := center(w)
		var score float64
		switch dir {
		case desktop.North:
			score = y*10000 - math.Abs(x-cx)
		case desktop.South:
			score = -y*10000 - math.Abs(x-cx)
		case desktop.West:
			score = x*10000 - math.Abs(y-cy)
		case desktop.East:
			score = -x*10000 - math.Abs(y-cy)
		}
		if score > bestScore {
			best, bestScore = w.ID, score
		}
	}
	return best
}
