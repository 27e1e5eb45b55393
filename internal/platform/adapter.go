package platform

import (
	"strconv"
	"strings"
)

// Point is a pointer position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect describes a rectangular region in canvas coordinates.
// A zero Width or Height means the size was never set and the host
// lays the element out at its natural size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element is a node of the host document as seen by the shell.
type Element interface {
	ID() string
	Tag() string

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	Style(prop string) string
	SetStyle(prop, value string)

	HasClass(class string) bool
	AddClass(class string)
	RemoveClass(class string)
	// ToggleClass flips class membership and reports whether the class is
	// now present.
	ToggleClass(class string) bool

	Text() string
	SetText(text string)

	Parent() Element
	Children() []Element
	AppendChild(child Element)
	RemoveChild(child Element)
}

// Document abstracts the host element tree.
type Document interface {
	// ElementByID returns nil when no attached element carries id.
	ElementByID(id string) Element
	// QuerySelectorAll returns matching attached elements in document order.
	// Supported selectors: "tag", ".class", "#id", each optionally followed
	// by one or more [attr] or [attr="value"] filters.
	QuerySelectorAll(selector string) []Element
	CreateElement(tag string) Element
	// Bounds returns the rendered bounding box of el.
	Bounds(el Element) Rect
}

// FindAncestor walks from el up through its parents and returns the first
// element accepted by match, or nil.
func FindAncestor(el Element, match func(Element) bool) Element {
	for cur := el; cur != nil; cur = cur.Parent() {
		if match(cur) {
			return cur
		}
	}
	return nil
}

// FindDescendant returns the first element below root, in document order,
// accepted by match.
func FindDescendant(root Element, match func(Element) bool) Element {
	for _, child := range root.Children() {
		if match(child) {
			return child
		}
		if found := FindDescendant(child, match); found != nil {
			return found
		}
	}
	return nil
}

// Closest is FindAncestor with a selector predicate.
func Closest(el Element, selector string) Element {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil
	}
	return FindAncestor(el, sel.Matches)
}

// WithClass returns a predicate matching elements carrying class.
func WithClass(class string) func(Element) bool {
	return func(el Element) bool { return el.HasClass(class) }
}

// FormatPx renders v as a CSS pixel length.
func FormatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ParsePx parses a CSS pixel length. Empty and non-pixel values yield 0.
func ParsePx(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
