package memdom

import (
	"strings"

	"github.com/1broseidon/deskwm/internal/platform"
)

// Node is one element of a Document.
type Node struct {
	doc      *Document
	tag      string
	attrs    map[string]string
	style    map[string]string
	classes  []string
	text     string
	parent   *Node
	children []*Node
}

func (n *Node) ID() string  { return n.attrs["id"] }
func (n *Node) Tag() string { return n.tag }

func (n *Node) Attr(name string) (string, bool) {
	if name == "class" {
		return strings.Join(n.classes, " "), len(n.classes) > 0
	}
	v, ok := n.attrs[name]
	return v, ok
}

func (n *Node) SetAttr(name, value string) {
	if name == "class" {
		n.classes = strings.Fields(value)
		return
	}
	n.attrs[name] = value
}

func (n *Node) RemoveAttr(name string) {
	if name == "class" {
		n.classes = nil
		return
	}
	delete(n.attrs, name)
}

func (n *Node) Style(prop string) string {
	return n.style[prop]
}

// SetStyle sets prop; an empty value removes it.
func (n *Node) SetStyle(prop, value string) {
	if value == "" {
		delete(n.style, prop)
		return
	}
	n.style[prop] = value
}

func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

func (n *Node) RemoveClass(class string) {
	out := n.classes[:0]
	for _, c := range n.classes {
		if c != class {
			out = append(out, c)
		}
	}
	n.classes = out
}

func (n *Node) ToggleClass(class string) bool {
	if n.HasClass(class) {
		n.RemoveClass(class)
		return false
	}
	n.AddClass(class)
	return true
}

func (n *Node) Text() string        { return n.text }
func (n *Node) SetText(text string) { n.text = text }

func (n *Node) Parent() platform.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []platform.Element {
	out := make([]platform.Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// AppendChild moves child under n. Elements from another adapter are ignored.
func (n *Node) AppendChild(child platform.Element) {
	c, ok := child.(*Node)
	if !ok || c == nil || c == n {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) RemoveChild(child platform.Element) {
	c, ok := child.(*Node)
	if !ok || c == nil {
		return
	}
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// walk visits n and its descendants depth-first in document order until
// visit returns false.
func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}
