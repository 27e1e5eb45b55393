package main

import (
	"context"
	"log/slog"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/daemon"
	"github.com/1broseidon/deskwm/internal/ipc"
)

// connect returns a client for the running daemon. When no daemon
// answers, it hosts the configured desktop in-process instead; stop
// shuts that shell down and is a no-op for daemon clients.
func connect(path string, logger *slog.Logger) (client *ipc.Client, cfg *config.Config, stop func(), err error) {
	res, err := loadConfig(path)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg = res.Config

	client = newClient()
	if _, err := client.Ping(); err == nil {
		return client, cfg, func() {}, nil
	}

	logger.Info("no daemon running, hosting desktop in-process")
	loop := daemon.NewLoop(daemon.NewShell(cfg, logger, nil), logger)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	return ipc.NewLocalClient(loop), cfg, cancel, nil
}
