package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetState       CommandType = "GET_STATE"
	CommandOpen           CommandType = "OPEN"
	CommandClose          CommandType = "CLOSE"
	CommandMinimize       CommandType = "MINIMIZE"
	CommandToggleMaximize CommandType = "TOGGLE_MAXIMIZE"
	CommandFocus          CommandType = "FOCUS"
	CommandTaskbarClick   CommandType = "TASKBAR_CLICK"
	CommandStartMenu      CommandType = "START_MENU"
	CommandDesktopClick   CommandType = "DESKTOP_CLICK"
	CommandPointer        CommandType = "POINTER"
	CommandClick          CommandType = "CLICK"
	CommandPing           CommandType = "PING"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// WindowPayload addresses one window.
type WindowPayload struct {
	WindowID string `json:"window_id"`
}

// TaskbarClickData reports what a taskbar click did.
type TaskbarClickData struct {
	Action string `json:"action"` // none, shown, focused, hidden
}

// StartMenuPayload selects "toggle" (default) or "dismiss".
type StartMenuPayload struct {
	Action string `json:"action,omitempty"`
}

type StartMenuData struct {
	Open bool `json:"open"`
}

// PointerPayload is one pointer or touch event. Kind accepts the DOM event
// names (mousedown, touchmove, ...) as well as down/move/up/cancel.
type PointerPayload struct {
	Kind     string  `json:"kind"`
	Device   string  `json:"device,omitempty"` // mouse (default) or touch
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	TargetID string  `json:"target_id,omitempty"`
}

// ClickPayload is a click on the element with TargetID.
type ClickPayload struct {
	TargetID string `json:"target_id"`
	Double   bool   `json:"double,omitempty"`
}

// PingData represents the data returned by PING
type PingData struct {
	UptimeSeconds int64 `json:"uptime_seconds"`
	Windows       int   `json:"windows"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
