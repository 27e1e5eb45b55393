package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
)

const (
	doubleClickWindow = 400 * time.Millisecond
	refreshInterval   = time.Second
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// Controller is the part of the IPC client the TUI drives.
type Controller interface {
	GetState() (*desktop.State, error)
	Focus(windowID string) error
	Minimize(windowID string) error
	ToggleMaximize(windowID string) error
	Close(windowID string) error
	StartMenu(action string) (bool, error)
	Pointer(p ipc.PointerPayload) (*desktop.GestureState, error)
	Click(targetID string, double bool) error
}

type refreshMsg time.Time

// model is the root bubbletea model for the TUI.
type model struct {
	ctl   Controller
	scene Scene
	keys  keyMap
	help  help.Model

	state desktop.State
	view  Viewport
	err   error

	// Left button state; press is the element under the cursor at press time.
	pressed bool
	press   string

	lastClick   string
	lastClickAt time.Time
	now         func() time.Time

	width  int
	height int
}

func newModel(ctl Controller, sc Scene) model {
	m := model{
		ctl:   ctl,
		scene: sc,
		keys:  defaultKeyMap(),
		help:  help.New(),
		now:   time.Now,
	}
	m.refresh()
	return m
}

func (m *model) refresh() {
	st, err := m.ctl.GetState()
	if err != nil {
		m.err = err
		return
	}
	m.state = *st
	m.layout()
}

func (m *model) layout() {
	m.view = Viewport{
		Cols:          m.width,
		Rows:          max(m.height-lipgloss.Height(m.footer()), 1),
		Canvas:        m.state.Canvas,
		TaskbarHeight: m.state.TaskbarHeight,
	}
}

func (m model) footer() string {
	if m.err != nil {
		return errorStyle.Render("error: " + m.err.Error())
	}
	return m.help.View(m.keys)
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case refreshMsg:
		if !m.pressed {
			m.refresh()
		}
		return m, tick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.err = nil
		m.handleKey(msg)
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(tea.MouseEvent(msg))
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) {
	active := m.state.Active()
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Start):
		_, m.err = m.ctl.StartMenu("toggle")
	case key.Matches(msg, m.keys.Cycle):
		m.focus(nextWindow(m.state, active))
	case key.Matches(msg, m.keys.Up):
		m.focus(neighbor(m.state, active, desktop.North))
	case key.Matches(msg, m.keys.Down):
		m.focus(neighbor(m.state, active, desktop.South))
	case key.Matches(msg, m.keys.Left):
		m.focus(neighbor(m.state, active, desktop.West))
	case key.Matches(msg, m.keys.Right):
		m.focus(neighbor(m.state, active, desktop.East))
	case active == "":
	case key.Matches(msg, m.keys.Minimize):
		m.err = m.ctl.Minimize(active)
	case key.Matches(msg, m.keys.Maximize):
		m.err = m.ctl.ToggleMaximize(active)
	case key.Matches(msg, m.keys.Close):
		m.err = m.ctl.Close(active)
	}
}

func (m *model) focus(id string) {
	if id != "" {
		m.err = m.ctl.Focus(id)
	}
}

// nextWindow returns the displayed window after current in document
// order, wrapping around.
func nextWindow(st desktop.State, current string) string {
	var displayed []string
	at := -1
	for _, w := range st.Windows {
		if !w.Visible {
			continue
		}
		if w.ID == current {
			at = len(displayed)
		}
		displayed = append(displayed, w.ID)
	}
	if len(displayed) == 0 {
		return ""
	}
	return displayed[(at+1)%len(displayed)]
}

// handleMouse forwards left-button presses, drags and releases as one
// pointer stream and synthesizes clicks for a press and release on the
// same element.
func (m *model) handleMouse(ev tea.MouseEvent) {
	target := m.view.HitTest(m.state, m.scene, ev.X, ev.Y)
	switch {
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		if m.pressed {
			return
		}
		m.err = nil
		m.pressed = true
		m.press = target
		m.pointer("down", ev, target)
	case ev.Action == tea.MouseActionMotion && m.pressed:
		m.pointer("move", ev, "")
	case ev.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		m.pointer("up", ev, target)
		if target != "" && target == m.press {
			m.click(target)
		}
		m.press = ""
	default:
		return
	}
	m.refresh()
}

func (m *model) pointer(kind string, ev tea.MouseEvent, target string) {
	x, y := m.view.ToCanvas(ev.X, ev.Y)
	_, err := m.ctl.Pointer(ipc.PointerPayload{Kind: kind, X: x, Y: y, TargetID: target})
	if err != nil {
		m.err = err
	}
}

func (m *model) click(target string) {
	now := m.now()
	double := target == m.lastClick && now.Sub(m.lastClickAt) <= doubleClickWindow
	if err := m.ctl.Click(target, false); err != nil {
		m.err = err
		return
	}
	if !double {
		m.lastClick, m.lastClickAt = target, now
		return
	}
	m.lastClick = ""
	if err := m.ctl.Click(target, true); err != nil {
		m.err = err
	}
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.view.draw(m.state, m.scene).Styled(),
		m.footer(),
	)
}
