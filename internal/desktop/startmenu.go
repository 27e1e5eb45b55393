package desktop

// StartMenu is the open state of the start-menu panel. The panel and the
// start button highlight are always projected together from it.
type StartMenu struct {
	open bool
}

// Toggle flips the panel and returns the new state.
func (m *StartMenu) Toggle() bool {
	m.open = !m.open
	return m.open
}

// Dismiss closes the panel and reports whether it was open.
func (m *StartMenu) Dismiss() bool {
	was := m.open
	m.open = false
	return was
}

func (m *StartMenu) IsOpen() bool {
	return m.open
}
