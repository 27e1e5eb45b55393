package desktop

import "strings"

// Direction is a set of compass components identifying a resize handle.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West
)

// handleDirections lists the eight resize handles in injection order.
var handleDirections = []Direction{
	North, South, East, West,
	North | East, North | West, South | East, South | West,
}

// HandleDirections returns the eight resize-handle directions.
func HandleDirections() []Direction {
	out := make([]Direction, len(handleDirections))
	copy(out, handleDirections)
	return out
}

// Has reports whether every component of c is present in d.
func (d Direction) Has(c Direction) bool {
	return c != 0 && d&c == c
}

// String returns the handle name ("n", "se", ...).
func (d Direction) String() string {
	var sb strings.Builder
	if d.Has(North) {
		sb.WriteByte('n')
	}
	if d.Has(South) {
		sb.WriteByte('s')
	}
	if d.Has(East) {
		sb.WriteByte('e')
	}
	if d.Has(West) {
		sb.WriteByte('w')
	}
	return sb.String()
}

// ParseDirection parses one of the eight handle names. Opposing components
// (for example "ns") are rejected.
func ParseDirection(s string) (Direction, bool) {
	if s == "" || len(s) > 2 {
		return 0, false
	}
	var d Direction
	for _, r := range strings.ToLower(s) {
		var c Direction
		switch r {
		case 'n':
			c = North
		case 's':
			c = South
		case 'e':
			c = East
		case 'w':
			c = West
		default:
			return 0, false
		}
		if d&c != 0 {
			return 0, false
		}
		d |= c
	}
	if d.Has(North|South) || d.Has(East|West) {
		return 0, false
	}
	if len(s) == 2 && (d&(North|South) == 0 || d&(East|West) == 0) {
		return 0, false
	}
	return d, true
}
