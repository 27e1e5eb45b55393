// Package daemon hosts a desktop shell behind a single-writer event loop.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/platform"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("event loop stopped")

type job struct {
	fn   func(*desktop.Shell)
	done chan error
}

// Loop owns a Shell and runs every operation on it from one goroutine,
// one at a time, so each event is fully processed before the next.
type Loop struct {
	shell   *desktop.Shell
	jobs    chan job
	stopped chan struct{}
	logger  *slog.Logger
}

// NewLoop wraps shell. Run must be called for Do to make progress.
func NewLoop(shell *desktop.Shell, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		shell:   shell,
		jobs:    make(chan job),
		stopped: make(chan struct{}),
		logger:  logger,
	}
}

// Run processes operations until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	l.logger.Info("event loop started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("event loop stopped")
			return
		case j := <-l.jobs:
			j.done <- l.run(j.fn)
		}
	}
}

// run executes fn, turning a panic into an error. A panicking operation
// still leaves no gesture in progress.
func (l *Loop) run(fn func(*desktop.Shell)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("shell operation panic recovered", "error", r)
			l.shell.HandlePointer(platform.PointerEvent{Kind: platform.PointerCancel})
			err = fmt.Errorf("shell operation panicked: %v", r)
		}
	}()
	fn(l.shell)
	return nil
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(*desktop.Shell)) error {
	done := make(chan error, 1)
	select {
	case l.jobs <- job{fn: fn, done: done}:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-l.stopped:
		// The job may have completed just before the loop exited.
		select {
		case err := <-done:
			return err
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stopped is closed when Run returns.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}
