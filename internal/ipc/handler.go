package ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/platform"
)

// Executor runs shell operations one at a time. *daemon.Loop implements it.
type Executor interface {
	Do(ctx context.Context, fn func(*desktop.Shell)) error
}

// Handler turns requests into shell operations.
type Handler struct {
	exec      Executor
	startTime time.Time
}

func NewHandler(exec Executor) *Handler {
	return &Handler{exec: exec, startTime: time.Now()}
}

// Handle processes one request and always returns a response.
func (h *Handler) Handle(ctx context.Context, req *Request) *Response {
	switch req.Command {
	case CommandGetState:
		return h.handleGetState(ctx)
	case CommandOpen:
		return h.handleWindow(ctx, req.Payload, (*desktop.Shell).Open)
	case CommandClose:
		return h.handleWindow(ctx, req.Payload, (*desktop.Shell).Close)
	case CommandMinimize:
		return h.handleWindow(ctx, req.Payload, (*desktop.Shell).Minimize)
	case CommandToggleMaximize:
		return h.handleWindow(ctx, req.Payload, (*desktop.Shell).ToggleMaximize)
	case CommandFocus:
		return h.handleWindow(ctx, req.Payload, (*desktop.Shell).Focus)
	case CommandTaskbarClick:
		return h.handleTaskbarClick(ctx, req.Payload)
	case CommandStartMenu:
		return h.handleStartMenu(ctx, req.Payload)
	case CommandDesktopClick:
		return h.ok(h.exec.Do(ctx, (*desktop.Shell).DesktopClick), nil)
	case CommandPointer:
		return h.handlePointer(ctx, req.Payload)
	case CommandClick:
		return h.handleClick(ctx, req.Payload)
	case CommandPing:
		return h.handlePing(ctx)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (h *Handler) ok(err error, data interface{}) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func decodePayload(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func (h *Handler) handleGetState(ctx context.Context) *Response {
	var st desktop.State
	err := h.exec.Do(ctx, func(s *desktop.Shell) { st = s.State() })
	return h.ok(err, st)
}

// handleWindow runs op for the window named in payload. Unknown ids are
// reported to the caller; the core itself would ignore them.
func (h *Handler) handleWindow(ctx context.Context, payload json.RawMessage, op func(*desktop.Shell, string)) *Response {
	var req WindowPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(err.Error())
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}

	var opErr error
	err := h.exec.Do(ctx, func(s *desktop.Shell) {
		if !s.Has(req.WindowID) {
			opErr = fmt.Errorf("%w: %s", desktop.ErrUnknownWindow, req.WindowID)
			return
		}
		op(s, req.WindowID)
	})
	if err == nil {
		err = opErr
	}
	return h.ok(err, nil)
}

func (h *Handler) handleTaskbarClick(ctx context.Context, payload json.RawMessage) *Response {
	var req WindowPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(err.Error())
	}

	var (
		action desktop.TaskbarAction
		opErr  error
	)
	err := h.exec.Do(ctx, func(s *desktop.Shell) {
		if !s.Has(req.WindowID) {
			opErr = fmt.Errorf("%w: %s", desktop.ErrUnknownWindow, req.WindowID)
			return
		}
		action = s.TaskbarClick(req.WindowID)
	})
	if err == nil {
		err = opErr
	}
	return h.ok(err, TaskbarClickData{Action: action.String()})
}

func (h *Handler) handleStartMenu(ctx context.Context, payload json.RawMessage) *Response {
	var req StartMenuPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
		}
	}

	var open bool
	var err error
	switch req.Action {
	case "", "toggle":
		err = h.exec.Do(ctx, func(s *desktop.Shell) { open = s.ToggleStartMenu() })
	case "dismiss":
		err = h.exec.Do(ctx, func(s *desktop.Shell) {
			s.DismissStartMenu()
			open = s.State().StartMenuOpen
		})
	default:
		return NewErrorResponse(fmt.Sprintf("unknown start menu action: %s", req.Action))
	}
	return h.ok(err, StartMenuData{Open: open})
}

// PointerEvent converts the payload, resolving the target through lookup.
func (p PointerPayload) PointerEvent(lookup func(id string) platform.Element) (platform.PointerEvent, error) {
	kind, ok := platform.ParsePointerKind(p.Kind)
	if !ok {
		return platform.PointerEvent{}, fmt.Errorf("unknown pointer kind: %q", p.Kind)
	}
	ev := platform.PointerEvent{Kind: kind, ClientX: p.X, ClientY: p.Y}
	switch p.Device {
	case "", "mouse":
		ev.Device = platform.DeviceMouse
	case "touch":
		ev.Device = platform.DeviceTouch
		// A touch release carries no active touch point.
		if kind == platform.PointerDown || kind == platform.PointerMove {
			ev.Touches = []platform.Point{{X: p.X, Y: p.Y}}
		}
	default:
		return platform.PointerEvent{}, fmt.Errorf("unknown device: %q", p.Device)
	}
	if p.TargetID != "" {
		ev.Target = lookup(p.TargetID)
		if ev.Target == nil {
			return platform.PointerEvent{}, fmt.Errorf("unknown element: %s", p.TargetID)
		}
	}
	return ev, nil
}

func (h *Handler) handlePointer(ctx context.Context, payload json.RawMessage) *Response {
	var req PointerPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(err.Error())
	}

	var (
		opErr   error
		gesture desktop.GestureState
	)
	err := h.exec.Do(ctx, func(s *desktop.Shell) {
		ev, err := req.PointerEvent(s.Element)
		if err != nil {
			opErr = err
			return
		}
		s.HandlePointer(ev)
		gesture = s.State().Gesture
	})
	if err == nil {
		err = opErr
	}
	return h.ok(err, gesture)
}

func (h *Handler) handleClick(ctx context.Context, payload json.RawMessage) *Response {
	var req ClickPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(err.Error())
	}
	if req.TargetID == "" {
		return NewErrorResponse("target_id is required")
	}

	var opErr error
	err := h.exec.Do(ctx, func(s *desktop.Shell) {
		target := s.Element(req.TargetID)
		if target == nil {
			opErr = fmt.Errorf("unknown element: %s", req.TargetID)
			return
		}
		s.HandleClick(platform.ClickEvent{Target: target, Double: req.Double})
	})
	if err == nil {
		err = opErr
	}
	return h.ok(err, nil)
}

func (h *Handler) handlePing(ctx context.Context) *Response {
	var windows int
	err := h.exec.Do(ctx, func(s *desktop.Shell) { windows = len(s.State().Windows) })
	return h.ok(err, PingData{
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Windows:       windows,
	})
}
