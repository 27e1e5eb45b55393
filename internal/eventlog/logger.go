// Package eventlog journals window-management actions to a rotating file.
//
// Entries are slog text records whose message is the action:
//
//	time=2024-05-01T12:30:00.000Z level=INFO msg=OPEN window=calc z=11
package eventlog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Action is the kind of journaled window action.
type Action string

const (
	ActionOpen      Action = "OPEN"
	ActionClose     Action = "CLOSE"
	ActionMinimize  Action = "MINIMIZE"
	ActionMaximize  Action = "MAXIMIZE"
	ActionRestore   Action = "RESTORE"
	ActionFocus     Action = "FOCUS"
	ActionDrag      Action = "DRAG"
	ActionResize    Action = "RESIZE"
	ActionStartMenu Action = "START-MENU"
	ActionDrift     Action = "DRIFT"
)

// Level returns the level an action is journaled at.
func (a Action) Level() slog.Level {
	switch a {
	case ActionFocus, ActionDrag, ActionResize, ActionStartMenu:
		return slog.LevelDebug
	case ActionDrift:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Config holds configuration for the journal.
type Config struct {
	Enabled   bool
	Level     slog.Level
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

// Logger appends actions to a file with size-based rotation. A nil or
// disabled Logger discards everything.
type Logger struct {
	mu      sync.Mutex
	out     *rotatingFile
	handler slog.Handler
	now     func() time.Time
}

// New creates a journal with the given configuration.
func New(cfg Config) (*Logger, error) {
	if !cfg.Enabled {
		return &Logger{now: time.Now}, nil
	}
	out, err := openRotating(cfg.FilePath, int64(cfg.MaxSizeMB)*1024*1024, cfg.MaxFiles)
	if err != nil {
		return nil, err
	}
	return &Logger{
		out:     out,
		handler: slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level}),
		now:     time.Now,
	}, nil
}

// Log records an action against window (empty for desktop-wide actions).
// args are slog key/value pairs.
func (l *Logger) Log(action Action, window string, args ...any) {
	if l == nil || l.handler == nil {
		return
	}
	ctx := context.Background()
	level := action.Level()
	if !l.handler.Enabled(ctx, level) {
		return
	}

	rec := slog.NewRecord(l.now(), level, string(action), 0)
	if window != "" {
		rec.AddAttrs(slog.String("window", window))
	}
	rec.Add(args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out.closed() {
		return
	}
	if err := l.handler.Handle(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "action journal: %v\n", err)
	}
}

// Close closes the journal file.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}

// ParseLevel maps a log level name onto a slog level. "warning" is
// accepted for warn; anything unknown is info.
func ParseLevel(s string) slog.Level {
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// rotatingFile is an append-only file that is rolled over to path.1,
// path.2, ... once it reaches maxBytes. At most maxFiles old files are
// kept. maxBytes <= 0 disables rotation.
type rotatingFile struct {
	path     string
	maxBytes int64
	maxFiles int

	f    *os.File
	size int64
}

func openRotating(path string, maxBytes int64, maxFiles int) (*rotatingFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	r := &rotatingFile{path: path, maxBytes: maxBytes, maxFiles: maxFiles}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", r.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	r.f, r.size = f, info.Size()
	return nil
}

func (r *rotatingFile) closed() bool {
	return r.f == nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	if r.f == nil {
		return 0, os.ErrClosed
	}
	if r.maxBytes > 0 && r.size >= r.maxBytes {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.f.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *rotatingFile) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

func (r *rotatingFile) backup(n int) string {
	return fmt.Sprintf("%s.%d", r.path, n)
}

func (r *rotatingFile) rotate() error {
	r.Close()

	var err error
	if r.maxFiles > 0 {
		os.Remove(r.backup(r.maxFiles))
		for i := r.maxFiles - 1; i >= 1; i-- {
			os.Rename(r.backup(i), r.backup(i+1))
		}
		err = os.Rename(r.path, r.backup(1))
	} else {
		err = os.Remove(r.path)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return r.open()
}
