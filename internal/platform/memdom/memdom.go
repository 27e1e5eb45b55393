// Package memdom is an in-memory element tree implementing
// platform.Document. The daemon, the TUI and tests host the shell on it.
package memdom

import (
	"strings"

	"github.com/1broseidon/deskwm/internal/platform"
)

const (
	DefaultNaturalWidth  = 300
	DefaultNaturalHeight = 200
)

// Document is a detached-node-aware element tree rooted at <body>.
type Document struct {
	root *Node

	// NaturalWidth and NaturalHeight are used by Bounds for elements
	// without an explicit width or height style.
	NaturalWidth  float64
	NaturalHeight float64
}

// New returns an empty document.
func New() *Document {
	d := &Document{
		NaturalWidth:  DefaultNaturalWidth,
		NaturalHeight: DefaultNaturalHeight,
	}
	d.root = d.newNode("body")
	return d
}

// Body returns the root element.
func (d *Document) Body() *Node {
	return d.root
}

func (d *Document) newNode(tag string) *Node {
	return &Node{
		doc:   d,
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
		style: make(map[string]string),
	}
}

// CreateElement implements platform.Document.
func (d *Document) CreateElement(tag string) platform.Element {
	return d.newNode(tag)
}

// ElementByID implements platform.Document.
func (d *Document) ElementByID(id string) platform.Element {
	if id == "" {
		return nil
	}
	var found *Node
	d.root.walk(func(n *Node) bool {
		if n.attrs["id"] == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return found
}

// QuerySelectorAll implements platform.Document.
func (d *Document) QuerySelectorAll(selector string) []platform.Element {
	sel, err := platform.ParseSelector(selector)
	if err != nil {
		return nil
	}
	var out []platform.Element
	d.root.walk(func(n *Node) bool {
		if sel.Matches(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Bounds implements platform.Document using the left/top/width/height
// styles of el.
func (d *Document) Bounds(el platform.Element) platform.Rect {
	if el == nil {
		return platform.Rect{}
	}
	r := platform.Rect{
		X:      platform.ParsePx(el.Style("left")),
		Y:      platform.ParsePx(el.Style("top")),
		Width:  platform.ParsePx(el.Style("width")),
		Height: platform.ParsePx(el.Style("height")),
	}
	if r.Width == 0 {
		r.Width = d.NaturalWidth
	}
	if r.Height == 0 {
		r.Height = d.NaturalHeight
	}
	return r
}
