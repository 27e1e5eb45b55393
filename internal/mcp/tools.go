package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
)

// gripOffset is where drags grab the title bar, relative to the window.
var gripOffset = struct{ X, Y float64 }{X: 12, Y: 6}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	st, err := s.ctl.GetState()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	windows := st.Windows
	if args.OpenOnly {
		windows = windows[:0:0]
		for _, w := range st.Windows {
			if w.Open() {
				windows = append(windows, w)
			}
		}
	}
	return nil, ListWindowsOutput{
		Windows:       windows,
		Taskbar:       st.Taskbar,
		Active:        st.Active(),
		StartMenuOpen: st.StartMenuOpen,
		Gesture:       st.Gesture,
	}, nil
}

// windowResult reads back the window after an operation.
func (s *Server) windowResult(id string) (WindowOutput, error) {
	st, err := s.ctl.GetState()
	if err != nil {
		return WindowOutput{}, err
	}
	w, ok := st.Window(id)
	if !ok {
		return WindowOutput{}, fmt.Errorf("%w: %s", desktop.ErrUnknownWindow, id)
	}
	return WindowOutput{Window: w, Active: st.Active()}, nil
}

func (s *Server) windowOp(op func(string) error, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if args.WindowID == "" {
		return nil, WindowOutput{}, fmt.Errorf("window_id is required")
	}
	if err := op(args.WindowID); err != nil {
		return nil, WindowOutput{}, err
	}
	out, err := s.windowResult(args.WindowID)
	return nil, out, err
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(s.ctl.Open, args)
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(s.ctl.Close, args)
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(s.ctl.Minimize, args)
}

func (s *Server) handleToggleMaximize(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(s.ctl.ToggleMaximize, args)
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(s.ctl.Focus, args)
}

func (s *Server) handleTaskbarClick(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, TaskbarClickOutput, error) {
	action, err := s.ctl.TaskbarClick(args.WindowID)
	if err != nil {
		return nil, TaskbarClickOutput{}, err
	}
	out, err := s.windowResult(args.WindowID)
	if err != nil {
		return nil, TaskbarClickOutput{}, err
	}
	return nil, TaskbarClickOutput{Action: action, Window: out.Window}, nil
}

// gesture delivers down on target, one move by (dx, dy) and the release.
// The release is always sent so no gesture is left open.
func (s *Server) gesture(target string, x, y, dx, dy float64, touch bool, want string) error {
	device := "mouse"
	if touch {
		device = "touch"
	}
	g, err := s.ctl.Pointer(ipc.PointerPayload{Kind: "down", Device: device, X: x, Y: y, TargetID: target})
	defer s.release(device, x+dx, y+dy)
	if err != nil {
		return err
	}
	if g.Mode != want {
		return fmt.Errorf("gesture did not start (mode %s)", g.Mode)
	}
	_, err = s.ctl.Pointer(ipc.PointerPayload{Kind: "move", Device: device, X: x + dx, Y: y + dy})
	return err
}

func (s *Server) release(device string, x, y float64) {
	if _, err := s.ctl.Pointer(ipc.PointerPayload{Kind: "up", Device: device, X: x, Y: y}); err != nil {
		s.logger.Warn("pointer release failed", "device", device, "err", err)
	}
}

func (s *Server) handleDragWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DragWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	before, err := s.windowResult(args.WindowID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	if !before.Window.Visible {
		return nil, WindowOutput{}, fmt.Errorf("window %s is not displayed", args.WindowID)
	}
	if before.Window.Maximized {
		return nil, WindowOutput{}, fmt.Errorf("window %s is maximized; drag is disabled", args.WindowID)
	}

	x := before.Window.Geometry.X + gripOffset.X
	y := before.Window.Geometry.Y + gripOffset.Y
	if err := s.gesture(desktop.TitleBarID(args.WindowID), x, y, args.DX, args.DY, args.Touch, desktop.Dragging.String()); err != nil {
		return nil, WindowOutput{}, err
	}
	out, err := s.windowResult(args.WindowID)
	return nil, out, err
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	dir, ok := desktop.ParseDirection(args.Direction)
	if !ok {
		return nil, WindowOutput{}, fmt.Errorf("invalid direction %q (want n, s, e, w, ne, nw, se or sw)", args.Direction)
	}
	before, err := s.windowResult(args.WindowID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	if !before.Window.Visible {
		return nil, WindowOutput{}, fmt.Errorf("window %s is not displayed", args.WindowID)
	}

	g := before.Window.Geometry
	if err := s.gesture(desktop.ResizerID(args.WindowID, dir), g.X, g.Y, args.DX, args.DY, false, desktop.Resizing.String()); err != nil {
		return nil, WindowOutput{}, err
	}
	out, err := s.windowResult(args.WindowID)
	return nil, out, err
}

func (s *Server) handleToggleStartMenu(_ context.Context, _ *mcpsdk.CallToolRequest, args StartMenuInput) (*mcpsdk.CallToolResult, StartMenuOutput, error) {
	action := "toggle"
	if args.Dismiss {
		action = "dismiss"
	}
	open, err := s.ctl.StartMenu(action)
	if err != nil {
		return nil, StartMenuOutput{}, err
	}
	return nil, StartMenuOutput{Open: open}, nil
}

func (s *Server) handleClick(_ context.Context, _ *mcpsdk.CallToolRequest, args ClickInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	if err := s.ctl.Click(args.TargetID, args.Double); err != nil {
		return nil, ListWindowsOutput{}, err
	}
	return s.handleListWindows(context.Background(), nil, ListWindowsInput{})
}
