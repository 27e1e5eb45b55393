package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/platform"
	"github.com/1broseidon/deskwm/internal/platform/memdom"
)

type shellExec struct{ shell *desktop.Shell }

func (e shellExec) Do(ctx context.Context, fn func(*desktop.Shell)) error {
	fn(e.shell)
	return nil
}

// testConfig maps the desk area onto 8x16 pixel cells for a 160x50 view.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Canvas = config.Size{Width: 1280, Height: 800}
	cfg.TaskbarHeight = 16
	return cfg
}

func newTestModel(t *testing.T) (model, *desktop.Shell) {
	t.Helper()
	cfg := testConfig()
	doc := memdom.New()
	desktop.Populate(doc, doc.Body(), cfg)
	shell := desktop.New(doc, desktop.OptionsFromConfig(cfg))

	m := newModel(ipc.NewLocalClient(shellExec{shell}), NewScene(cfg))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 51})
	return updated.(model), shell
}

func testViewport() Viewport {
	return Viewport{Cols: 160, Rows: 50, Canvas: desktop.Size{Width: 1280, Height: 800}, TaskbarHeight: 16}
}

func testState(t *testing.T) desktop.State {
	t.Helper()
	cfg := testConfig()
	doc := memdom.New()
	desktop.Populate(doc, doc.Body(), cfg)
	return desktop.New(doc, desktop.OptionsFromConfig(cfg)).State()
}

func mouseMsg(action tea.MouseAction, col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: action, Button: tea.MouseButtonLeft}
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(model)
	}
	return m
}

func TestViewport_ToCanvas(t *testing.T) {
	x, y := testViewport().ToCanvas(20, 3)
	if x != 164 || y != 56 {
		t.Fatalf("ToCanvas(20,3) = %v,%v, want 164,56", x, y)
	}
}

func TestViewport_WindowBox(t *testing.T) {
	v := testViewport()
	tests := []struct {
		name string
		geom platform.Rect
		want box
	}{
		{"explicit", platform.Rect{X: 40, Y: 40, Width: 240, Height: 320}, box{5, 2, 34, 22}},
		{"natural size", platform.Rect{X: 200, Y: 260}, box{25, 16, 62, 28}},
		{"minimum cells", platform.Rect{X: 0, Y: 0, Width: 8, Height: 16}, box{0, 0, minBoxCols - 1, minBoxRows - 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.windowBox(desktop.WindowState{Geometry: tt.geom})
			if got != tt.want {
				t.Fatalf("windowBox = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHitTest(t *testing.T) {
	v := testViewport()
	st := testState(t)
	sc := NewScene(testConfig())

	tests := []struct {
		name     string
		col, row int
		want     string
	}{
		{"desktop", 100, 40, desktop.DesktopID},
		{"icon", 2, 5, "icon-terminal"},
		{"nw corner", 5, 2, desktop.ResizerID("calc", desktop.North|desktop.West)},
		{"north edge", 20, 2, desktop.ResizerID("calc", desktop.North)},
		{"east edge", 34, 10, desktop.ResizerID("calc", desktop.East)},
		{"se corner", 34, 22, desktop.ResizerID("calc", desktop.South|desktop.East)},
		{"title bar", 20, 3, desktop.TitleBarID("calc")},
		{"minimize", 29, 3, desktop.ButtonID("calc", "min")},
		{"maximize", 31, 3, desktop.ButtonID("calc", "max")},
		{"close", 33, 3, desktop.ButtonID("calc", "close")},
		{"body", 20, 10, desktop.BodyID("calc")},
		{"start button", 3, 49, desktop.StartBtnID},
		{"taskbar gap", 7, 49, ""},
		{"task item", 10, 49, desktop.TaskItemID("calc")},
		{"outside", 200, 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.HitTest(st, sc, tt.col, tt.row); got != tt.want {
				t.Fatalf("HitTest(%d,%d) = %q, want %q", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestHitTest_TopmostWindowWins(t *testing.T) {
	v := testViewport()
	st := desktop.State{
		Canvas: desktop.Size{Width: 1280, Height: 800},
		Windows: []desktop.WindowState{
			{ID: "a", Visible: true, ZIndex: 12, Geometry: platform.Rect{X: 0, Y: 0, Width: 400, Height: 400}},
			{ID: "b", Visible: true, ZIndex: 11, Geometry: platform.Rect{X: 0, Y: 0, Width: 400, Height: 400}},
			{ID: "c", Visible: false, ZIndex: 99, Geometry: platform.Rect{X: 0, Y: 0, Width: 400, Height: 400}},
		},
	}
	if got := v.HitTest(st, Scene{}, 10, 10); got != desktop.BodyID("a") {
		t.Fatalf("HitTest = %q, want body of a", got)
	}
}

func TestHitTest_StartMenuCoversDesktop(t *testing.T) {
	v := testViewport()
	st := testState(t)
	st.StartMenuOpen = true

	want := []string{"calc", "notes", "terminal"}
	for i, id := range want {
		if got := v.HitTest(st, Scene{}, 1, 46+i); got != desktop.StartEntryID(id) {
			t.Fatalf("row %d = %q, want %q", 46+i, got, desktop.StartEntryID(id))
		}
	}
}

func TestHitTest_MissingButtons(t *testing.T) {
	cfg := testConfig()
	no := false
	cfg.Windows[0].Minimizable = &no
	cfg.Windows[0].Maximizable = &no
	doc := memdom.New()
	desktop.Populate(doc, doc.Body(), cfg)
	st := desktop.New(doc, desktop.OptionsFromConfig(cfg)).State()

	v := testViewport()
	sc := NewScene(cfg)
	if got := v.HitTest(st, sc, 33, 3); got != desktop.ButtonID("calc", "close") {
		t.Fatalf("close = %q", got)
	}
	if got := v.HitTest(st, sc, 29, 3); got != desktop.TitleBarID("calc") {
		t.Fatalf("former minimize cell = %q, want title bar", got)
	}
}

func TestDraw(t *testing.T) {
	v := testViewport()
	st := testState(t)
	lines := strings.Split(v.draw(st, NewScene(testConfig())).Plain(), "\n")
	if len(lines) != 50 {
		t.Fatalf("rows = %d, want 50", len(lines))
	}
	cell := func(col, row int) rune { return []rune(lines[row])[col] }

	if cell(5, 2) != '╭' {
		t.Errorf("calc corner = %q, want rounded border", cell(5, 2))
	}
	if cell(40, 5) != '┏' {
		t.Errorf("notes corner = %q, want thick border for the active window", cell(40, 5))
	}
	if !strings.Contains(lines[3], "Calculator") {
		t.Errorf("title row %q lacks the title", lines[3])
	}
	if !strings.Contains(lines[4], "7 8 9 /") {
		t.Errorf("body row %q lacks the body", lines[4])
	}
	if !strings.HasPrefix(lines[49], "[Start]  Calculator   Notes ") {
		t.Errorf("taskbar = %q", lines[49])
	}
	if strings.Contains(strings.Join(lines, "\n"), "$ _") {
		t.Error("hidden terminal window was drawn")
	}
}

func TestModel_DragTitleBar(t *testing.T) {
	m, shell := newTestModel(t)
	m = send(m,
		mouseMsg(tea.MouseActionPress, 20, 3),
		mouseMsg(tea.MouseActionMotion, 25, 6),
		mouseMsg(tea.MouseActionMotion, 30, 8),
		mouseMsg(tea.MouseActionRelease, 30, 8),
	)
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	calc, _ := shell.State().Window("calc")
	if calc.Geometry.X != 120 || calc.Geometry.Y != 120 {
		t.Fatalf("calc at %v,%v, want 120,120", calc.Geometry.X, calc.Geometry.Y)
	}
	if !calc.Active {
		t.Fatal("dragged window should be active")
	}
	if got := shell.Gesture(); !got.Idle() {
		t.Fatalf("gesture not reset: %+v", got)
	}
}

func TestModel_ClickCloseButton(t *testing.T) {
	m, shell := newTestModel(t)
	m = send(m,
		mouseMsg(tea.MouseActionPress, 33, 3),
		mouseMsg(tea.MouseActionRelease, 33, 3),
	)
	st := shell.State()
	calc, _ := st.Window("calc")
	if calc.Open() {
		t.Fatal("calc should be closed")
	}
	for _, item := range st.Taskbar {
		if item.WindowID == "calc" {
			t.Fatal("closed window kept its taskbar item")
		}
	}
	if m.state.Active() != "notes" {
		t.Fatalf("model state active = %q, want notes", m.state.Active())
	}
}

func TestModel_ReleaseElsewhereIsNotAClick(t *testing.T) {
	m, shell := newTestModel(t)
	send(m,
		mouseMsg(tea.MouseActionPress, 33, 3),
		mouseMsg(tea.MouseActionRelease, 100, 40),
	)
	if calc, _ := shell.State().Window("calc"); !calc.Visible {
		t.Fatal("release off the button must not close the window")
	}
}

func TestModel_DoubleClickIcon(t *testing.T) {
	m, shell := newTestModel(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m = send(m,
		mouseMsg(tea.MouseActionPress, 2, 5),
		mouseMsg(tea.MouseActionRelease, 2, 5),
	)
	if term, _ := shell.State().Window("terminal"); term.Visible {
		t.Fatal("single click opened the window")
	}

	now = now.Add(200 * time.Millisecond)
	send(m,
		mouseMsg(tea.MouseActionPress, 2, 5),
		mouseMsg(tea.MouseActionRelease, 2, 5),
	)
	term, _ := shell.State().Window("terminal")
	if !term.Visible || !term.Active {
		t.Fatalf("terminal = %+v, want visible and active", term)
	}
}

func TestModel_SlowClicksAreNotADoubleClick(t *testing.T) {
	m, shell := newTestModel(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m = send(m, mouseMsg(tea.MouseActionPress, 2, 5), mouseMsg(tea.MouseActionRelease, 2, 5))
	now = now.Add(time.Second)
	send(m, mouseMsg(tea.MouseActionPress, 2, 5), mouseMsg(tea.MouseActionRelease, 2, 5))

	if term, _ := shell.State().Window("terminal"); term.Visible {
		t.Fatal("clicks a second apart opened the window")
	}
}

func TestModel_Keys(t *testing.T) {
	m, shell := newTestModel(t)
	runes := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if got := shell.State().Active(); got != "calc" {
		t.Fatalf("after tab active = %q, want calc", got)
	}

	m = send(m, runes("x"))
	if calc, _ := shell.State().Window("calc"); !calc.Maximized {
		t.Fatal("x should maximize the active window")
	}

	m = send(m, runes("m"))
	if calc, _ := shell.State().Window("calc"); calc.Visible || !calc.Minimized {
		t.Fatalf("m should minimize calc: %+v", calc)
	}

	m = send(m, runes("s"))
	if !shell.State().StartMenuOpen {
		t.Fatal("s should open the start menu")
	}
	if !m.state.StartMenuOpen {
		t.Fatal("model state not refreshed")
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should return tea.Quit")
	}
}

func TestNextWindow(t *testing.T) {
	st := desktop.State{Windows: []desktop.WindowState{
		{ID: "a", Visible: true},
		{ID: "b", Visible: false, Minimized: true},
		{ID: "c", Visible: true},
	}}
	tests := []struct {
		current, want string
	}{
		{"a", "c"},
		{"c", "a"},
		{"", "a"},
		{"b", "a"},
	}
	for _, tt := range tests {
		if got := nextWindow(st, tt.current); got != tt.want {
			t.Errorf("nextWindow(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if got := nextWindow(desktop.State{}, "a"); got != "" {
		t.Errorf("nextWindow on empty state = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Calculator", 20, "Calculator"},
		{"Calculator", 5, "Calc…"},
		{"Calculator", 1, "…"},
		{"Calculator", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestNeighbor(t *testing.T) {
	rect := func(x, y float64) platform.Rect { return platform.Rect{X: x, Y: y, Width: 100, Height: 100} }
	st := desktop.State{Windows: []desktop.WindowState{
		{ID: "a", Visible: true, Geometry: rect(50, 50)},
		{ID: "b", Visible: true, Geometry: rect(450, 50)},
		{ID: "c", Visible: true, Geometry: rect(50, 450)},
		{ID: "d", Visible: false, Geometry: rect(450, 450)},
	}}

	tests := []struct {
		name    string
		current string
		dir     desktop.Direction
		want    string
	}{
		{"east", "a", desktop.East, "b"},
		{"south", "a", desktop.South, "c"},
		{"west wraps to the far east", "a", desktop.West, "b"},
		{"north wraps to the bottom", "a", desktop.North, "c"},
		{"nearest wins", "b", desktop.West, "a"},
		{"hidden windows are skipped", "b", desktop.South, "c"},
		{"no active window", "", desktop.East, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := neighbor(st, tt.current, tt.dir); got != tt.want {
				t.Fatalf("neighbor(%q, %v) = %q, want %q", tt.current, tt.dir, got, tt.want)
			}
		})
	}
}

func TestModel_ArrowKeysFocusNeighbor(t *testing.T) {
	m, shell := newTestModel(t)
	send(m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := shell.State().Active(); got != "calc" {
		t.Fatalf("after left active = %q, want calc", got)
	}
}
