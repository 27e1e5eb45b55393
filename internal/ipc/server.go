package ipc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/deskwm/internal/runtimepath"
)

const (
	// requestTimeout bounds how long one request may wait for the event loop.
	requestTimeout = 5 * time.Second
	// idleTimeout closes connections that send nothing for this long.
	idleTimeout = 30 * time.Second
	// probeTimeout bounds the liveness check against an existing socket.
	probeTimeout = 200 * time.Millisecond
)

// ErrAlreadyRunning is returned by Start when another server answers on
// the socket path.
var ErrAlreadyRunning = errors.New("another deskwm daemon is listening")

// Server answers newline-delimited JSON requests on a unix socket. A
// connection may carry any number of requests; each gets one response line
// in order.
type Server struct {
	socketPath string
	handler    *Handler
	logger     *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
	wg       sync.WaitGroup
}

// NewServer creates a server on the default socket path. A nil logger
// discards server diagnostics.
func NewServer(exec Executor, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerWithPath(exec, socketPath, logger), nil
}

// NewServerWithPath creates a server listening on socketPath.
func NewServerWithPath(exec Executor, socketPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		socketPath: socketPath,
		handler:    NewHandler(exec),
		logger:     logger.With("component", "ipc"),
		conns:      make(map[net.Conn]struct{}),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start listens on the socket and serves connections in the background.
// A stale socket file left by a dead daemon is replaced; a live one makes
// Start fail with ErrAlreadyRunning.
func (s *Server) Start() error {
	if conn, err := net.DialTimeout("unix", s.socketPath, probeTimeout); err == nil {
		conn.Close()
		return fmt.Errorf("%w on %s", ErrAlreadyRunning, s.socketPath)
	}
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("listening", "socket", s.socketPath)
	s.wg.Add(1)
	go s.acceptLoop(listener)
	return nil
}

func (s *Server) acceptLoop(listener net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosed() {
				return
			}
			s.logger.Warn("accept failed", "err", err)
			continue
		}
		if !s.track(conn) {
			conn.Close()
			return
		}
		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer s.untrack(conn)

	reader := bufio.NewReader(conn)
	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))
		line, err := reader.ReadBytes('\n')
		if line = bytes.TrimSpace(line); len(line) > 0 {
			if werr := s.respond(conn, line); werr != nil {
				s.logger.Debug("write failed", "err", werr)
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !s.isClosed() {
				s.logger.Debug("read failed", "err", err)
			}
			return
		}
	}
}

func (s *Server) respond(conn net.Conn, line []byte) error {
	var resp *Response
	req, err := ParseRequest(line)
	if err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		resp = s.handler.Handle(ctx, req)
		cancel()
		s.logger.Debug("request", "command", req.Command, "status", resp.Status)
	}

	data, err := resp.Marshal()
	if err != nil {
		s.logger.Error("marshal response", "err", err)
		data, _ = NewErrorResponse("internal error").Marshal()
	}
	_, err = conn.Write(append(data, '\n'))
	return err
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Stop closes the listener and every open connection, waits for in-flight
// requests, and removes the socket file.
func (s *Server) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	listener := s.listener
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
		os.Remove(s.socketPath)
	}
	s.wg.Wait()
}
