package desktop

// TaskbarItem is the taskbar button of one open window.
type TaskbarItem struct {
	WindowID string `json:"window_id"`
	Label    string `json:"label"`
	Active   bool   `json:"active"`
}

// Taskbar keeps at most one item per window, in creation order.
type Taskbar struct {
	items []TaskbarItem
}

func (t *Taskbar) index(id string) int {
	for i, item := range t.items {
		if item.WindowID == id {
			return i
		}
	}
	return -1
}

// Ensure appends an item for id unless one exists and reports whether it
// created one.
func (t *Taskbar) Ensure(id, label string) bool {
	if t.index(id) >= 0 {
		return false
	}
	t.items = append(t.items, TaskbarItem{WindowID: id, Label: label})
	return true
}

// Remove deletes the item for id.
func (t *Taskbar) Remove(id string) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.items = append(t.items[:i], t.items[i+1:]...)
	return true
}

func (t *Taskbar) Item(id string) (TaskbarItem, bool) {
	if i := t.index(id); i >= 0 {
		return t.items[i], true
	}
	return TaskbarItem{}, false
}

// Items returns a copy of the items in taskbar order.
func (t *Taskbar) Items() []TaskbarItem {
	out := make([]TaskbarItem, len(t.items))
	copy(out, t.items)
	return out
}

// SyncActivation highlights the item of id and clears every other one.
// An empty id clears all items.
func (t *Taskbar) SyncActivation(id string) {
	for i := range t.items {
		t.items[i].Active = id != "" && t.items[i].WindowID == id
	}
}

// Deactivate clears the highlight of id's item.
func (t *Taskbar) Deactivate(id string) {
	if i := t.index(id); i >= 0 {
		t.items[i].Active = false
	}
}

// TaskbarAction is the outcome of a taskbar button click.
type TaskbarAction int

const (
	TaskbarNone TaskbarAction = iota
	// TaskbarShown: the window was hidden and is now displayed and active.
	TaskbarShown
	// TaskbarFocused: the window was displayed and is now active.
	TaskbarFocused
	// TaskbarHidden: the window was active and is now hidden.
	TaskbarHidden
)

// String returns the string representation of the action
func (a TaskbarAction) String() string {
	switch a {
	case TaskbarShown:
		return "shown"
	case TaskbarFocused:
		return "focused"
	case TaskbarHidden:
		return "hidden"
	default:
		return "none"
	}
}
