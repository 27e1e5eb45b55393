package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/eventlog"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
	Journal  *eventlog.Logger
}

// Reconciler periodically re-projects the shell state onto the document
// and reports any drift it corrected.
type Reconciler struct {
	interval time.Duration
	loop     *Loop
	logger   *slog.Logger
	journal  *eventlog.Logger
}

// NewReconciler creates a new reconciler running its passes on loop.
func NewReconciler(cfg ReconcilerConfig, loop *Loop) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Reconciler{
		interval: interval,
		loop:     loop,
		logger:   logger,
		journal:  cfg.Journal,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

// reconcile performs a single reconciliation pass and returns the drift
// it corrected.
func (r *Reconciler) reconcile(ctx context.Context) []string {
	var drift []string
	err := r.loop.Do(ctx, func(s *desktop.Shell) {
		drift = s.Reconcile()
	})
	if err != nil {
		r.logger.Error("reconciler: pass failed", "error", err)
		return nil
	}

	for _, d := range drift {
		r.logger.Warn("reconciler: drift corrected", "detail", d)
		r.journal.Log(eventlog.ActionDrift, "", "detail", d)
	}
	return drift
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow(ctx context.Context) []string {
	return r.reconcile(ctx)
}
