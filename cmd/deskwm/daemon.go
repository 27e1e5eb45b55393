package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/daemon"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/eventlog"
	"github.com/1broseidon/deskwm/internal/ipc"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm daemon [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Host the desktop shell in the foreground and serve IPC requests.")
		fmt.Fprintln(os.Stderr, "SIGHUP reloads the canvas size from the configuration.")
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := res.Config
	log.Printf("Configuration loaded (%d windows, canvas %dx%d)", len(cfg.Windows), cfg.Canvas.Width, cfg.Canvas.Height)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: eventlog.ParseLevel(cfg.LogLevel),
	}))

	journal, err := daemon.OpenJournal(cfg)
	if err != nil {
		log.Printf("Warning: action journal disabled: %v", err)
		journal = nil
	}
	defer journal.Close()

	shell := daemon.NewShell(cfg, logger, journal)
	loop := daemon.NewLoop(shell, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	ipcServer, err := ipc.NewServer(loop, logger)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer ipcServer.Stop()

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: cfg.ReconcileInterval(),
		Logger:   logger,
		Journal:  journal,
	}, loop)
	reconciler.ReconcileNow(ctx)
	go reconciler.Run(ctx)

	log.Println("deskwm daemon started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			if sig != syscall.SIGHUP {
				log.Println("Shutting down deskwm daemon...")
				return 0
			}
			log.Println("Received SIGHUP, reloading config...")
			if err := reloadCanvas(ctx, loop, *path); err != nil {
				log.Printf("Config reload failed: %v", err)
				continue
			}
			log.Println("Config reloaded successfully")
		case <-loop.Stopped():
			return 1
		}
	}
}

// reloadCanvas applies the canvas of a freshly loaded configuration.
// Windows and icons are fixed for the lifetime of the daemon.
func reloadCanvas(ctx context.Context, loop *daemon.Loop, path string) error {
	res, err := loadConfig(path)
	if err != nil {
		return err
	}
	canvas := res.Config.Canvas
	return loop.Do(ctx, func(s *desktop.Shell) {
		s.SetCanvas(float64(canvas.Width), float64(canvas.Height))
	})
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}
