package platform

import (
	"fmt"
	"strings"
)

// AttrFilter is one [name] or [name="value"] clause of a selector.
type AttrFilter struct {
	Name     string
	Value    string
	HasValue bool
}

// Selector is a compound simple selector such as
// `button.task-item[data-win="calc"]`.
type Selector struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   []AttrFilter
}

// ParseSelector parses the selector subset documented on Document.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	s = strings.TrimSpace(s)
	if s == "" {
		return sel, fmt.Errorf("empty selector")
	}

	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		return s[start:i]
	}

	if isIdentByte(s[0]) {
		sel.Tag = strings.ToLower(readIdent())
	}
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
			name := readIdent()
			if name == "" {
				return Selector{}, fmt.Errorf("selector %q: empty class name", s)
			}
			sel.Classes = append(sel.Classes, name)
		case '#':
			i++
			name := readIdent()
			if name == "" {
				return Selector{}, fmt.Errorf("selector %q: empty id", s)
			}
			sel.ID = name
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return Selector{}, fmt.Errorf("selector %q: unterminated attribute filter", s)
			}
			f, err := parseAttrFilter(s[i+1 : i+end])
			if err != nil {
				return Selector{}, fmt.Errorf("selector %q: %w", s, err)
			}
			sel.Attrs = append(sel.Attrs, f)
			i += end + 1
		default:
			return Selector{}, fmt.Errorf("selector %q: unexpected %q at %d", s, s[i], i)
		}
	}
	return sel, nil
}

func parseAttrFilter(body string) (AttrFilter, error) {
	name, value, hasValue := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return AttrFilter{}, fmt.Errorf("empty attribute name")
	}
	if !hasValue {
		return AttrFilter{Name: name}, nil
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	return AttrFilter{Name: name, Value: value, HasValue: true}, nil
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Matches reports whether el satisfies every clause of the selector.
func (sel Selector) Matches(el Element) bool {
	if el == nil {
		return false
	}
	if sel.Tag != "" && !strings.EqualFold(el.Tag(), sel.Tag) {
		return false
	}
	if sel.ID != "" && el.ID() != sel.ID {
		return false
	}
	for _, c := range sel.Classes {
		if !el.HasClass(c) {
			return false
		}
	}
	for _, f := range sel.Attrs {
		v, ok := el.Attr(f.Name)
		if !ok {
			return false
		}
		if f.HasValue && v != f.Value {
			return false
		}
	}
	return true
}
