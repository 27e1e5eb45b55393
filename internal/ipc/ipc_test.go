package ipc

import (
	"bufio"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/platform/memdom"
)

// serialExec runs operations under a mutex.
type serialExec struct {
	mu    sync.Mutex
	shell *desktop.Shell
}

func (e *serialExec) Do(_ context.Context, fn func(*desktop.Shell)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.shell)
	return nil
}

func newExec(t *testing.T) *serialExec {
	t.Helper()
	cfg := config.DefaultConfig()
	doc := memdom.New()
	desktop.Populate(doc, doc.Body(), cfg)
	return &serialExec{shell: desktop.New(doc, desktop.OptionsFromConfig(cfg))}
}

func TestLocalClient_WindowCommands(t *testing.T) {
	c := NewLocalClient(newExec(t))

	if err := c.Open("terminal"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	st, err := c.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if st.Active() != "terminal" {
		t.Fatalf("active = %q, want terminal", st.Active())
	}

	action, err := c.TaskbarClick("terminal")
	if err != nil {
		t.Fatalf("TaskbarClick: %v", err)
	}
	if action != "hidden" {
		t.Fatalf("action = %q, want hidden", action)
	}

	if err := c.ToggleMaximize("calc"); err != nil {
		t.Fatalf("ToggleMaximize: %v", err)
	}
	st, _ = c.GetState()
	if w, _ := st.Window("calc"); !w.Maximized {
		t.Fatalf("calc should be maximized")
	}

	for _, op := range []func(string) error{c.Open, c.Close, c.Minimize, c.Focus, c.ToggleMaximize} {
		err := op("ghost")
		if err == nil || !strings.Contains(err.Error(), "unknown window") {
			t.Fatalf("err = %v, want unknown window", err)
		}
	}
	if _, err := c.TaskbarClick("ghost"); err == nil {
		t.Fatalf("expected unknown window error")
	}
}

func TestLocalClient_PointerDrag(t *testing.T) {
	c := NewLocalClient(newExec(t))
	// calc starts at 40,40.
	steps := []PointerPayload{
		{Kind: "touchstart", Device: "touch", X: 50, Y: 50, TargetID: desktop.TitleBarID("calc")},
		{Kind: "touchmove", Device: "touch", X: 60, Y: 75},
	}
	for _, p := range steps {
		g, err := c.Pointer(p)
		if err != nil {
			t.Fatalf("Pointer(%+v): %v", p, err)
		}
		if g.Mode != "dragging" || g.WindowID != "calc" {
			t.Fatalf("gesture = %+v", g)
		}
	}
	g, err := c.Pointer(PointerPayload{Kind: "touchend", Device: "touch"})
	if err != nil {
		t.Fatalf("Pointer(end): %v", err)
	}
	if g.Mode != "idle" {
		t.Fatalf("gesture after release = %+v", g)
	}

	st, _ := c.GetState()
	w, _ := st.Window("calc")
	if w.Geometry.X != 50 || w.Geometry.Y != 65 {
		t.Fatalf("geometry = %+v, want x=50 y=65", w.Geometry)
	}

	if _, err := c.Pointer(PointerPayload{Kind: "wheel"}); err == nil {
		t.Fatalf("expected error for unknown pointer kind")
	}
	if _, err := c.Pointer(PointerPayload{Kind: "down", TargetID: "nope"}); err == nil {
		t.Fatalf("expected error for unknown target")
	}
}

func TestLocalClient_ClicksAndStartMenu(t *testing.T) {
	c := NewLocalClient(newExec(t))

	open, err := c.StartMenu("toggle")
	if err != nil || !open {
		t.Fatalf("StartMenu(toggle) = %t, %v", open, err)
	}
	if err := c.DesktopClick(); err != nil {
		t.Fatalf("DesktopClick: %v", err)
	}
	st, _ := c.GetState()
	if st.StartMenuOpen {
		t.Fatalf("desktop click should dismiss the start menu")
	}
	if open, err := c.StartMenu("dismiss"); err != nil || open {
		t.Fatalf("StartMenu(dismiss) = %t, %v", open, err)
	}
	if _, err := c.StartMenu("explode"); err == nil {
		t.Fatalf("expected error for unknown action")
	}

	if err := c.Click(desktop.ButtonID("notes", "close"), false); err != nil {
		t.Fatalf("Click: %v", err)
	}
	st, _ = c.GetState()
	if w, _ := st.Window("notes"); w.Visible {
		t.Fatalf("close button click should hide notes")
	}
	if err := c.Click("icon-notes", true); err != nil {
		t.Fatalf("Click(icon): %v", err)
	}
	st, _ = c.GetState()
	if st.Active() != "notes" {
		t.Fatalf("icon double click should open notes")
	}
	if err := c.Click("missing", false); err == nil {
		t.Fatalf("expected unknown element error")
	}

	ping, err := c.Ping()
	if err != nil || ping.Windows != 3 {
		t.Fatalf("Ping = %+v, %v", ping, err)
	}
}

func TestServer_SocketRoundTrip(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "deskwm.sock")
	srv := NewServerWithPath(newExec(t), socket, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	c := NewClientWithPath(socket)
	if err := c.Open("terminal"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	st, err := c.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if st.Active() != "terminal" || len(st.Taskbar) != 3 {
		t.Fatalf("state = %+v", st)
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(`{"command":"NOPE"}` + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(line, `"status":"ERROR"`) || !strings.Contains(line, "Unknown command") {
		t.Fatalf("response = %s", line)
	}
}

func TestClient_NoDaemon(t *testing.T) {
	c := NewClientWithPath(filepath.Join(t.TempDir(), "absent.sock"))
	if _, err := c.Ping(); err == nil || !strings.Contains(err.Error(), "is the daemon running") {
		t.Fatalf("err = %v", err)
	}
}

func TestServer_PipelinedRequests(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "deskwm.sock")
	srv := NewServerWithPath(newExec(t), socket, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	reqs := `{"command":"OPEN","payload":{"window_id":"notes"}}` + "\n\n" +
		`{"command":"CLOSE","payload":{"window_id":"notes"}}` + "\n" +
		`not json` + "\n"
	if _, err := conn.Write([]byte(reqs)); err != nil {
		t.Fatalf("write: %v", err)
	}

	reader := bufio.NewReader(conn)
	want := []string{`"status":"OK"`, `"status":"OK"`, "Invalid request"}
	for i, w := range want {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("response %d: %v", i, err)
		}
		if !strings.Contains(line, w) {
			t.Fatalf("response %d = %s, want %s", i, line, w)
		}
	}
}

func TestServer_RefusesLiveSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "deskwm.sock")
	first := NewServerWithPath(newExec(t), socket, nil)
	if err := first.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(first.Stop)

	second := NewServerWithPath(newExec(t), socket, nil)
	if err := second.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start = %v, want ErrAlreadyRunning", err)
	}
	if _, err := NewClientWithPath(socket).Ping(); err != nil {
		t.Fatalf("first server stopped answering: %v", err)
	}
}

func TestServer_ReplacesStaleSocketAndCleansUp(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "deskwm.sock")
	if err := os.WriteFile(socket, nil, 0600); err != nil {
		t.Fatalf("write stale socket: %v", err)
	}

	srv := NewServerWithPath(newExec(t), socket, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start over stale socket: %v", err)
	}
	if _, err := NewClientWithPath(socket).Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	srv.Stop()
	srv.Stop()
	if _, err := os.Stat(socket); !os.IsNotExist(err) {
		t.Fatalf("socket still present after Stop: %v", err)
	}
}
