package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/runtimepath"
)

// Client handles IPC communication with the daemon. A client built with
// NewLocalClient talks to an in-process executor instead of the socket.
type Client struct {
	socketPath string
	timeout    time.Duration
	local      *Handler
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithPath(socketPath)
}

// NewClientWithPath creates a client for the socket at socketPath
func NewClientWithPath(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// NewLocalClient creates a client that runs requests on exec directly.
func NewLocalClient(exec Executor) *Client {
	return &Client{
		timeout: 5 * time.Second,
		local:   NewHandler(exec),
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	var (
		resp *Response
		err  error
	)
	if c.local != nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		resp = c.local.Handle(ctx, req)
		cancel()
	} else {
		resp, err = c.roundTrip(req)
		if err != nil {
			return nil, err
		}
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return resp, nil
}

func (c *Client) roundTrip(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}

func (c *Client) call(cmd CommandType, payload interface{}, out interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// GetState retrieves a snapshot of the shell
func (c *Client) GetState() (*desktop.State, error) {
	var st desktop.State
	if err := c.call(CommandGetState, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Open shows, raises and activates a window
func (c *Client) Open(windowID string) error {
	return c.call(CommandOpen, WindowPayload{WindowID: windowID}, nil)
}

// Close hides a window and removes its taskbar button
func (c *Client) Close(windowID string) error {
	return c.call(CommandClose, WindowPayload{WindowID: windowID}, nil)
}

// Minimize hides a window and keeps its taskbar button
func (c *Client) Minimize(windowID string) error {
	return c.call(CommandMinimize, WindowPayload{WindowID: windowID}, nil)
}

// ToggleMaximize maximizes or restores a window
func (c *Client) ToggleMaximize(windowID string) error {
	return c.call(CommandToggleMaximize, WindowPayload{WindowID: windowID}, nil)
}

// Focus raises and activates a displayed window
func (c *Client) Focus(windowID string) error {
	return c.call(CommandFocus, WindowPayload{WindowID: windowID}, nil)
}

// TaskbarClick clicks a window's taskbar button and returns the outcome
func (c *Client) TaskbarClick(windowID string) (string, error) {
	var data TaskbarClickData
	if err := c.call(CommandTaskbarClick, WindowPayload{WindowID: windowID}, &data); err != nil {
		return "", err
	}
	return data.Action, nil
}

// StartMenu toggles ("toggle") or dismisses ("dismiss") the start menu and
// returns whether it is open afterwards
func (c *Client) StartMenu(action string) (bool, error) {
	var data StartMenuData
	if err := c.call(CommandStartMenu, StartMenuPayload{Action: action}, &data); err != nil {
		return false, err
	}
	return data.Open, nil
}

// DesktopClick clicks the empty desktop
func (c *Client) DesktopClick() error {
	return c.call(CommandDesktopClick, nil, nil)
}

// Pointer delivers one pointer event and returns the gesture afterwards
func (c *Client) Pointer(p PointerPayload) (*desktop.GestureState, error) {
	var g desktop.GestureState
	if err := c.call(CommandPointer, p, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Click delivers a click on the element with targetID
func (c *Client) Click(targetID string, double bool) error {
	return c.call(CommandClick, ClickPayload{TargetID: targetID, Double: double}, nil)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() (*PingData, error) {
	var data PingData
	if err := c.call(CommandPing, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
