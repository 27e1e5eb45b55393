package mcp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/platform"
	"github.com/1broseidon/deskwm/internal/platform/memdom"
)

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

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	doc := memdom.New()
	desktop.Populate(doc, doc.Body(), cfg)
	exec := &serialExec{shell: desktop.New(doc, desktop.OptionsFromConfig(cfg))}
	return NewServer(ipc.NewLocalClient(exec), nil)
}

// failingRelease passes every call through except pointer releases.
type failingRelease struct {
	Controller
}

func (f failingRelease) Pointer(p ipc.PointerPayload) (*desktop.GestureState, error) {
	if p.Kind == "up" {
		return nil, errors.New("socket closed")
	}
	return f.Controller.Pointer(p)
}

func TestDragWindow_LogsReleaseFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := NewServer(failingRelease{newTestServer(t).ctl}, logger)

	_, out, err := s.handleDragWindow(context.Background(), nil, DragWindowInput{WindowID: "calc", DX: 10, DY: 5})
	if err != nil {
		t.Fatalf("drag: %v", err)
	}
	if !out.Window.Visible {
		t.Fatalf("window = %+v", out.Window)
	}
	if got := buf.String(); !strings.Contains(got, "pointer release failed") || !strings.Contains(got, "socket closed") {
		t.Fatalf("log = %q, want the release error", got)
	}
}

func TestListWindows(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleListWindows(ctx, nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if len(out.Windows) != 3 || out.Active != "notes" || len(out.Taskbar) != 2 {
		t.Fatalf("out = %+v", out)
	}

	_, out, err = s.handleListWindows(ctx, nil, ListWindowsInput{OpenOnly: true})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("open_only returned %d windows, want 2", len(out.Windows))
	}
}

func TestWindowTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleOpenWindow(ctx, nil, WindowInput{WindowID: "terminal"})
	if err != nil {
		t.Fatalf("open_window: %v", err)
	}
	if !out.Window.Visible || out.Active != "terminal" {
		t.Fatalf("out = %+v", out)
	}

	_, tb, err := s.handleTaskbarClick(ctx, nil, WindowInput{WindowID: "terminal"})
	if err != nil {
		t.Fatalf("taskbar_click: %v", err)
	}
	if tb.Action != "hidden" || !tb.Window.Minimized {
		t.Fatalf("taskbar click = %+v", tb)
	}

	_, out, err = s.handleToggleMaximize(ctx, nil, WindowInput{WindowID: "calc"})
	if err != nil || !out.Window.Maximized {
		t.Fatalf("toggle_maximize = %+v, %v", out, err)
	}

	_, out, err = s.handleCloseWindow(ctx, nil, WindowInput{WindowID: "calc"})
	if err != nil || out.Window.Open() {
		t.Fatalf("close_window = %+v, %v", out, err)
	}

	if _, _, err := s.handleFocusWindow(ctx, nil, WindowInput{WindowID: "ghost"}); err == nil || !strings.Contains(err.Error(), "unknown window") {
		t.Fatalf("err = %v, want unknown window", err)
	}
	if _, _, err := s.handleMinimizeWindow(ctx, nil, WindowInput{}); err == nil {
		t.Fatalf("expected error for empty window_id")
	}
}

func TestDragAndResizeTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	// calc starts at 40,40 with 240x320.
	_, out, err := s.handleDragWindow(ctx, nil, DragWindowInput{WindowID: "calc", DX: 70, DY: 40})
	if err != nil {
		t.Fatalf("drag_window: %v", err)
	}
	if out.Window.Geometry.X != 110 || out.Window.Geometry.Y != 80 || out.Active != "calc" {
		t.Fatalf("after drag = %+v", out)
	}

	_, out, err = s.handleResizeWindow(ctx, nil, ResizeWindowInput{WindowID: "calc", Direction: "nw", DX: -30, DY: -20})
	if err != nil {
		t.Fatalf("resize_window: %v", err)
	}
	want := platform.Rect{X: 80, Y: 60, Width: 270, Height: 340}
	if out.Window.Geometry != want {
		t.Fatalf("after resize = %+v, want %+v", out.Window.Geometry, want)
	}

	_, out, err = s.handleResizeWindow(ctx, nil, ResizeWindowInput{WindowID: "calc", Direction: "se", DX: -1000, DY: -1000})
	if err != nil {
		t.Fatalf("resize_window: %v", err)
	}
	if out.Window.Geometry.Width != 100 || out.Window.Geometry.Height != 50 {
		t.Fatalf("resize should clamp to 100x50, got %+v", out.Window.Geometry)
	}

	if _, _, err := s.handleResizeWindow(ctx, nil, ResizeWindowInput{WindowID: "calc", Direction: "up"}); err == nil {
		t.Fatalf("expected invalid direction error")
	}

	s.handleToggleMaximize(ctx, nil, WindowInput{WindowID: "calc"})
	if _, _, err := s.handleDragWindow(ctx, nil, DragWindowInput{WindowID: "calc", DX: 5}); err == nil {
		t.Fatalf("expected drag of maximized window to fail")
	}
	_, list, _ := s.handleListWindows(ctx, nil, ListWindowsInput{})
	if list.Gesture.Mode != "idle" {
		t.Fatalf("tools must not leave a gesture open: %+v", list.Gesture)
	}
}

func TestStartMenuAndClickTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, sm, err := s.handleToggleStartMenu(ctx, nil, StartMenuInput{})
	if err != nil || !sm.Open {
		t.Fatalf("toggle_start_menu = %+v, %v", sm, err)
	}
	_, sm, err = s.handleToggleStartMenu(ctx, nil, StartMenuInput{Dismiss: true})
	if err != nil || sm.Open {
		t.Fatalf("dismiss = %+v, %v", sm, err)
	}

	_, list, err := s.handleClick(ctx, nil, ClickInput{TargetID: "icon-terminal", Double: true})
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if list.Active != "terminal" {
		t.Fatalf("double click on icon should open terminal, active = %q", list.Active)
	}
	if _, _, err := s.handleClick(ctx, nil, ClickInput{TargetID: "nowhere"}); err == nil {
		t.Fatalf("expected unknown element error")
	}
}
