package desktop

import "sort"

// ZOrder stacks the visible windows. Bringing a window to front gives it a
// z-index strictly greater than every other visible window; windows that
// are already uniquely on top keep their value.
type ZOrder struct {
	reg *Registry
}

func NewZOrder(reg *Registry) *ZOrder {
	return &ZOrder{reg: reg}
}

// BringToFront activates id and deactivates every other window. Hidden
// and unknown windows are ignored.
func (z *ZOrder) BringToFront(id string) bool {
	target, ok := z.reg.Get(id)
	if !ok || !target.Visible {
		return false
	}

	others := false
	maxOther := 0
	for _, w := range z.reg.All() {
		if w.ID == id {
			continue
		}
		w.Active = false
		if !w.Visible {
			continue
		}
		if !others || w.ZIndex > maxOther {
			maxOther = w.ZIndex
			others = true
		}
	}
	if others && target.ZIndex <= maxOther {
		target.ZIndex = maxOther + 1
	}
	target.Active = true
	return true
}

// Topmost returns the visible window with the highest z-index, or nil.
// Ties go to the window earliest in document order.
func (z *ZOrder) Topmost() *Window {
	var top *Window
	for _, w := range z.reg.Displayed() {
		if top == nil || w.ZIndex > top.ZIndex {
			top = w
		}
	}
	return top
}

// Stack returns the visible windows from back to front.
func (z *ZOrder) Stack() []*Window {
	stack := z.reg.Displayed()
	sort.SliceStable(stack, func(i, j int) bool {
		return stack[i].ZIndex < stack[j].ZIndex
	})
	return stack
}
