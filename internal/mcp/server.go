// Package mcp exposes the desktop shell as Model Context Protocol tools.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
)

const (
	ServerName    = "deskwm"
	ServerVersion = "0.1.0"
)

// Controller drives a shell. *ipc.Client implements it both over the
// daemon socket and in-process.
type Controller interface {
	GetState() (*desktop.State, error)
	Open(windowID string) error
	Close(windowID string) error
	Minimize(windowID string) error
	ToggleMaximize(windowID string) error
	Focus(windowID string) error
	TaskbarClick(windowID string) (string, error)
	StartMenu(action string) (bool, error)
	Pointer(p ipc.PointerPayload) (*desktop.GestureState, error)
	Click(targetID string, double bool) error
}

// Server is the MCP server for desktop window management.
type Server struct {
	mcpServer *mcpsdk.Server
	ctl       Controller
	logger    *slog.Logger
}

// NewServer creates a new MCP server driving ctl. A nil logger discards
// diagnostics.
func NewServer(ctl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{ctl: ctl, logger: logger.With("component", "mcp")}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every window with its geometry, visibility, activation and z-index, plus the taskbar items, the start menu state and the gesture in progress.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open a window: show it if hidden, bring it to front, activate it and make sure it has a taskbar button. Opening an open window only raises it.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window: hide it and remove its taskbar button. The window can be opened again later.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window: hide it but keep its taskbar button, without highlight.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_maximize",
		Description: "Maximize a window to the canvas minus the taskbar, or restore its exact previous geometry if it is maximized.",
	}, s.handleToggleMaximize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring a displayed window to front and activate it.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "taskbar_click",
		Description: "Click a window's taskbar button: shows a hidden window, activates an inactive one, hides the active one (minimize or close depending on configuration).",
	}, s.handleTaskbarClick)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "drag_window",
		Description: "Drag a window by its title bar by (dx, dy) pixels. Maximized windows cannot be dragged.",
	}, s.handleDragWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window from one of its eight border handles by (dx, dy) pixels. The opposite edge stays fixed; the size never drops below the configured minimum.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_start_menu",
		Description: "Toggle the start menu, or dismiss it.",
	}, s.handleToggleStartMenu)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "click",
		Description: "Click (or double click) a shell element by id, e.g. calc-close, task-notes, icon-terminal, start-btn or desktop.",
	}, s.handleClick)
}
