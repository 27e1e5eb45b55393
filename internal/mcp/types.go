package mcp

import "github.com/1broseidon/deskwm/internal/desktop"

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	OpenOnly bool `json:"open_only,omitempty" jsonschema:"When true, list only windows that are displayed or minimized"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows       []desktop.WindowState `json:"windows"`
	Taskbar       []desktop.TaskbarItem `json:"taskbar"`
	Active        string                `json:"active,omitempty"`
	StartMenuOpen bool                  `json:"start_menu_open"`
	Gesture       desktop.GestureState  `json:"gesture"`
}

// WindowInput addresses one window.
type WindowInput struct {
	WindowID string `json:"window_id" jsonschema:"required,Window id (see list_windows)"`
}

// WindowOutput is the state of the addressed window after the operation.
type WindowOutput struct {
	Window desktop.WindowState `json:"window"`
	Active string              `json:"active,omitempty"`
}

// TaskbarClickOutput is the output for the taskbar_click tool.
type TaskbarClickOutput struct {
	Action string              `json:"action"`
	Window desktop.WindowState `json:"window"`
}

// DragWindowInput is the input for the drag_window tool.
type DragWindowInput struct {
	WindowID string  `json:"window_id" jsonschema:"required,Window id to drag by its title bar"`
	DX       float64 `json:"dx" jsonschema:"Horizontal pointer travel in pixels"`
	DY       float64 `json:"dy" jsonschema:"Vertical pointer travel in pixels"`
	Touch    bool    `json:"touch,omitempty" jsonschema:"Deliver the gesture as touch events instead of mouse events"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	WindowID  string  `json:"window_id" jsonschema:"required,Window id to resize"`
	Direction string  `json:"direction" jsonschema:"required,Resize handle: n, s, e, w, ne, nw, se or sw"`
	DX        float64 `json:"dx" jsonschema:"Horizontal pointer travel in pixels"`
	DY        float64 `json:"dy" jsonschema:"Vertical pointer travel in pixels"`
}

// StartMenuInput is the input for the toggle_start_menu tool.
type StartMenuInput struct {
	Dismiss bool `json:"dismiss,omitempty" jsonschema:"Close the menu instead of toggling it"`
}

// StartMenuOutput is the output for the toggle_start_menu tool.
type StartMenuOutput struct {
	Open bool `json:"open"`
}

// ClickInput is the input for the click tool.
type ClickInput struct {
	TargetID string `json:"target_id" jsonschema:"required,Element id to click (window buttons, task items, icons, start entries, desktop)"`
	Double   bool   `json:"double,omitempty" jsonschema:"Double click (opens windows from desktop icons)"`
}
