package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/1broseidon/deskwm/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive desktop driven by the mouse. Talks to the daemon when it")
		fmt.Fprintln(os.Stderr, "is running, otherwise hosts the configured desktop itself.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Mouse:")
		fmt.Fprintln(os.Stderr, "  drag title bar   Move a window")
		fmt.Fprintln(os.Stderr, "  drag border      Resize a window")
		fmt.Fprintln(os.Stderr, "  _ □ x            Minimize, maximize/restore, close")
		fmt.Fprintln(os.Stderr, "  double click     Open a desktop icon")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  tab       Focus the next window")
		fmt.Fprintln(os.Stderr, "  m/x/w     Minimize, maximize, close the active window")
		fmt.Fprintln(os.Stderr, "  s         Toggle the start menu")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}

	// The alternate screen owns stdout; keep shell logging quiet.
	client, cfg, stop, err := connect(*path, slog.New(slog.DiscardHandler))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer stop()

	if err := tui.Run(client, tui.NewScene(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
