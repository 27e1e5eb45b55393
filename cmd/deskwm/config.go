package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/runtimepath"
)

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  deskwm config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  deskwm config print [--path PATH] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  deskwm config explain [--path PATH] <yaml.path>")
		fmt.Fprintln(os.Stderr, "  deskwm config init [--path PATH] [--defaults] [--force]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
		if ok, rc := parseFlags(fs, args[1:]); !ok {
			return rc
		}
		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		_ = fs.Bool("effective", false, "Print effective config (default)")
		if ok, rc := parseFlags(fs, args[1:]); !ok {
			return rc
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
		if ok, rc := parseFlags(fs, args[1:]); !ok {
			return rc
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", src)
		fmt.Printf("value:\n%s", value)
		return 0

	case "init":
		return runConfigInit(args[1:])

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runConfigInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	defaults := fs.Bool("defaults", false, "Write the built-in defaults without prompting")
	force := fs.Bool("force", false, "Overwrite an existing file")
	if ok, rc := parseFlags(fs, args); !ok {
		return rc
	}

	target := *path
	if target == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		target = p
	}
	if _, err := os.Stat(target); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", target)
		return 1
	}

	cfg := config.DefaultConfig()
	if !*defaults {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "config init requires an interactive terminal (or --defaults)")
			return 2
		}
		values := newInitValues(cfg)
		if err := values.form().Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := values.apply(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if err := cfg.SaveTo(target); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("wrote %s\n", target)
	return 0
}

// initValues holds the string-typed fields edited by the init form.
type initValues struct {
	canvasWidth   string
	canvasHeight  string
	taskbarHeight string
	policy        string
	journal       bool
}

func newInitValues(cfg *config.Config) *initValues {
	return &initValues{
		canvasWidth:   strconv.Itoa(cfg.Canvas.Width),
		canvasHeight:  strconv.Itoa(cfg.Canvas.Height),
		taskbarHeight: strconv.Itoa(cfg.TaskbarHeight),
		policy:        string(cfg.TaskbarClickActive),
		journal:       cfg.Logging.Enabled,
	}
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}

func (v *initValues) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("canvas_width").
				Title("Canvas Width").
				Description("Width of the desktop in pixels").
				Validate(positiveInt).
				Value(&v.canvasWidth),
			huh.NewInput().
				Key("canvas_height").
				Title("Canvas Height").
				Description("Height of the desktop in pixels, taskbar included").
				Validate(positiveInt).
				Value(&v.canvasHeight),
			huh.NewInput().
				Key("taskbar_height").
				Title("Taskbar Height").
				Description("Pixels reserved at the bottom when a window is maximized").
				Validate(nonNegativeInt).
				Value(&v.taskbarHeight),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("taskbar_click_active").
				Title("Taskbar Click On Active Window").
				Description("What clicking the active window's taskbar button does").
				Options(
					huh.NewOption("minimize (keep the taskbar button)", string(config.ActivePolicyMinimize)),
					huh.NewOption("close (remove the taskbar button)", string(config.ActivePolicyClose)),
				).
				Value(&v.policy),
			huh.NewConfirm().
				Key("journal").
				Title("Action Journal").
				Description("Record window actions to "+filepath.Join(runtimepath.DataDir(), "actions.log")).
				Value(&v.journal),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (v *initValues) apply(cfg *config.Config) error {
	width, err := strconv.Atoi(v.canvasWidth)
	if err != nil {
		return fmt.Errorf("canvas width: %w", err)
	}
	height, err := strconv.Atoi(v.canvasHeight)
	if err != nil {
		return fmt.Errorf("canvas height: %w", err)
	}
	taskbar, err := strconv.Atoi(v.taskbarHeight)
	if err != nil {
		return fmt.Errorf("taskbar height: %w", err)
	}
	cfg.Canvas = config.Size{Width: width, Height: height}
	cfg.TaskbarHeight = taskbar
	cfg.TaskbarClickActive = config.ActivePolicy(v.policy)
	cfg.Logging.Enabled = v.journal
	return cfg.Validate()
}
