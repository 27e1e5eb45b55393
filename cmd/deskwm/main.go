package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}
	os.Exit(run(os.Args[1], os.Args[2:]))
}

func run(cmd string, args []string) int {
	switch cmd {
	case "daemon":
		return runDaemon(args)
	case "state":
		return runState(args)
	case "status":
		return runStatus(args)
	case "open", "close", "minimize", "maximize", "focus":
		return runWindowOp(cmd, args)
	case "taskbar":
		return runTaskbar(args)
	case "start":
		return runStart(args)
	case "desktop":
		return runDesktopClick(args)
	case "pointer":
		return runPointer(args)
	case "click":
		return runClick(args)
	case "config":
		return runConfig(args)
	case "tui":
		return runTUI(args)
	case "mcp":
		return runMCP(args)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printMainUsage(os.Stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the deskwm daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  state               Show windows, taskbar and start menu")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  open <id>           Show a window and bring it to front")
	fmt.Fprintln(w, "  close <id>          Close a window")
	fmt.Fprintln(w, "  minimize <id>       Minimize a window")
	fmt.Fprintln(w, "  maximize <id>       Toggle maximize/restore")
	fmt.Fprintln(w, "  focus <id>          Bring a displayed window to front")
	fmt.Fprintln(w, "  taskbar <id>        Click a window's taskbar button")
	fmt.Fprintln(w, "  start [dismiss]     Toggle (or dismiss) the start menu")
	fmt.Fprintln(w, "  desktop             Click the empty desktop")
	fmt.Fprintln(w, "  pointer             Send one pointer event")
	fmt.Fprintln(w, "  click <element-id>  Click an element")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config init         Write a config file interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the interactive desktop")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm <command> --help' for command-specific options.")
}

// newClient is replaced in tests to talk to an in-process shell.
var newClient = func() *ipc.Client { return ipc.NewClient() }

func parseFlags(fs *flag.FlagSet, args []string) (ok bool, rc int) {
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return false, 0
		}
		return false, 2
	}
	return true, 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	ping, err := newClient().Ping()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: true\n")
	fmt.Printf("windows:        %d\n", ping.Windows)
	fmt.Printf("uptime_seconds: %d\n", ping.UptimeSeconds)
	return 0
}

func runState(args []string) int {
	fs := flag.NewFlagSet("state", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print the snapshot as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm state [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the shell state. Output is JSON when stdout is not a terminal.")
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}

	st, err := newClient().GetState()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	printState(os.Stdout, st)
	return 0
}

func printState(w io.Writer, st *desktop.State) {
	fmt.Fprintf(w, "%-12s %-14s %-10s %6s %s\n", "ID", "TITLE", "STATE", "Z", "GEOMETRY")
	for _, win := range st.Windows {
		fmt.Fprintf(w, "%-12s %-14s %-10s %6d %s\n",
			win.ID, win.Title, windowStatus(win), win.ZIndex, formatRect(win.Geometry))
	}
	fmt.Fprintln(w, "")

	var items []string
	for _, item := range st.Taskbar {
		label := item.Label
		if item.Active {
			label = "*" + label
		}
		items = append(items, label)
	}
	fmt.Fprintf(w, "taskbar:    %s\n", strings.Join(items, " | "))
	fmt.Fprintf(w, "start_menu: %s\n", map[bool]string{true: "open", false: "closed"}[st.StartMenuOpen])
	if st.Gesture.Mode != desktop.Idle.String() {
		fmt.Fprintf(w, "gesture:    %s %s %s\n", st.Gesture.Mode, st.Gesture.WindowID, st.Gesture.Direction)
	}
}

func windowStatus(w desktop.WindowState) string {
	switch {
	case w.Active && w.Maximized:
		return "active,max"
	case w.Active:
		return "active"
	case w.Minimized:
		return "minimized"
	case !w.Visible:
		return "closed"
	case w.Maximized:
		return "maximized"
	default:
		return "visible"
	}
}

func formatRect(r platform.Rect) string {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	size := "auto"
	if r.Width > 0 && r.Height > 0 {
		size = num(r.Width) + "x" + num(r.Height)
	}
	return num(r.X) + "," + num(r.Y) + " " + size
}

func runWindowOp(cmd string, args []string) int {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deskwm %s <window-id>\n", cmd)
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires exactly one window id\n", cmd)
		fs.Usage()
		return 2
	}
	id := fs.Arg(0)

	client := newClient()
	ops := map[string]func(string) error{
		"open":     client.Open,
		"close":    client.Close,
		"minimize": client.Minimize,
		"maximize": client.ToggleMaximize,
		"focus":    client.Focus,
	}
	if err := ops[cmd](id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTaskbar(args []string) int {
	fs := flag.NewFlagSet("taskbar", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm taskbar <window-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Click the window's taskbar button and print what it did.")
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	action, err := newClient().TaskbarClick(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(action)
	return 0
}

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm start [toggle|dismiss]")
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}
	action := "toggle"
	if fs.NArg() > 0 {
		action = fs.Arg(0)
	}
	if action != "toggle" && action != "dismiss" {
		fmt.Fprintf(os.Stderr, "unknown start action: %s\n", action)
		return 2
	}
	open, err := newClient().StartMenu(action)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("start_menu: %s\n", map[bool]string{true: "open", false: "closed"}[open])
	return 0
}

func runDesktopClick(args []string) int {
	fs := flag.NewFlagSet("desktop", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm desktop")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Click the empty desktop: dismisses the start menu and deactivates windows.")
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}
	if err := newClient().DesktopClick(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runPointer(args []string) int {
	fs := flag.NewFlagSet("pointer", flag.ContinueOnError)
	device := fs.String("device", "mouse", "Input device: mouse or touch")
	target := fs.String("target", "", "Element id under the pointer")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm pointer [--device mouse|touch] [--target ID] <down|move|up|cancel> <x> <y>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Send one pointer event; down on a title bar or resizer starts a gesture.")
		fs.PrintDefaults()
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return 2
	}
	x, errX := strconv.ParseFloat(fs.Arg(1), 64)
	y, errY := strconv.ParseFloat(fs.Arg(2), 64)
	if errX != nil || errY != nil {
		fmt.Fprintln(os.Stderr, "x and y must be numbers")
		return 2
	}

	gesture, err := newClient().Pointer(ipc.PointerPayload{
		Kind:     fs.Arg(0),
		Device:   *device,
		X:        x,
		Y:        y,
		TargetID: *target,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("gesture: %s", gesture.Mode)
	if gesture.WindowID != "" {
		fmt.Printf(" %s", gesture.WindowID)
	}
	if gesture.Direction != "" {
		fmt.Printf(" %s", gesture.Direction)
	}
	fmt.Println()
	return 0
}

func runClick(args []string) int {
	fs := flag.NewFlagSet("click", flag.ContinueOnError)
	double := fs.Bool("double", false, "Send a double click")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm click [--double] <element-id>")
		fs.PrintDefaults()
	}
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if err := newClient().Click(fs.Arg(0), *double); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
