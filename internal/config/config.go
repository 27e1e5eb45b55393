package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskwm/internal/runtimepath"
)

// Size is a width/height pair in canvas pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ActivePolicy decides what a taskbar click on the already active window does.
type ActivePolicy string

const (
	// ActivePolicyMinimize hides the window and keeps its taskbar button.
	ActivePolicyMinimize ActivePolicy = "minimize"
	// ActivePolicyClose hides the window and removes its taskbar button.
	ActivePolicyClose ActivePolicy = "close"
)

// WindowSpec declares one window of the desktop.
type WindowSpec struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title,omitempty"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width,omitempty"`  // 0 = natural size
	Height int    `yaml:"height,omitempty"` // 0 = natural size
	ZIndex int    `yaml:"z_index,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
	Body   string `yaml:"body,omitempty"`

	Maximizable *bool `yaml:"maximizable,omitempty"`
	Minimizable *bool `yaml:"minimizable,omitempty"`
	Closable    *bool `yaml:"closable,omitempty"`
}

// IconSpec declares a desktop icon that opens a window on double click.
type IconSpec struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Window string `yaml:"window"`
}

// LoggingConfig configures the action journal.
type LoggingConfig struct {
	// Enabled turns action journaling on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls journal verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the journal path (default: <data dir>/actions.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum journal size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Config is the effective configuration.
type Config struct {
	Canvas                   Size          `yaml:"canvas"`
	TaskbarHeight            int           `yaml:"taskbar_height"`
	MinWindow                Size          `yaml:"min_window"`
	ZIndexBase               int           `yaml:"z_index_base"`
	TaskbarClickActive       ActivePolicy  `yaml:"taskbar_click_active"`
	Windows                  []WindowSpec  `yaml:"windows"`
	Icons                    []IconSpec    `yaml:"icons,omitempty"`
	LogLevel                 string        `yaml:"log_level"`
	Logging                  LoggingConfig `yaml:"logging,omitempty"`
	ReconcileIntervalSeconds int           `yaml:"reconcile_interval_seconds"`
}

const (
	DefaultCanvasWidth       = 1280
	DefaultCanvasHeight      = 800
	DefaultTaskbarHeight     = 22
	DefaultMinWindowWidth    = 100
	DefaultMinWindowHeight   = 50
	DefaultZIndexBase        = 10
	DefaultReconcileInterval = 10
)

func DefaultConfig() *Config {
	return &Config{
		Canvas:                   Size{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		TaskbarHeight:            DefaultTaskbarHeight,
		MinWindow:                Size{Width: DefaultMinWindowWidth, Height: DefaultMinWindowHeight},
		ZIndexBase:               DefaultZIndexBase,
		TaskbarClickActive:       ActivePolicyMinimize,
		Windows:                  BuiltinWindows(),
		Icons:                    BuiltinIcons(),
		LogLevel:                 "info",
		ReconcileIntervalSeconds: DefaultReconcileInterval,
	}
}

// Flag getters default to true when unset.

func (w WindowSpec) IsMaximizable() bool { return w.Maximizable == nil || *w.Maximizable }
func (w WindowSpec) IsMinimizable() bool { return w.Minimizable == nil || *w.Minimizable }
func (w WindowSpec) IsClosable() bool    { return w.Closable == nil || *w.Closable }

// GetWindow returns the declared window with id.
func (c *Config) GetWindow(id string) (WindowSpec, bool) {
	for _, w := range c.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return WindowSpec{}, false
}

// ReconcileInterval returns the reconciler period.
func (c *Config) ReconcileInterval() time.Duration {
	if c == nil || c.ReconcileIntervalSeconds <= 0 {
		return DefaultReconcileInterval * time.Second
	}
	return time.Duration(c.ReconcileIntervalSeconds) * time.Second
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		cfg.File = filepath.Join(runtimepath.DataDir(), "actions.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// SaveTo validates the configuration and writes it to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return &ValidationError{Path: "canvas", Err: fmt.Errorf("canvas width and height must be > 0")}
	}
	if c.TaskbarHeight < 0 || c.TaskbarHeight >= c.Canvas.Height {
		return &ValidationError{Path: "taskbar_height", Err: fmt.Errorf("taskbar_height must be >= 0 and smaller than canvas.height")}
	}
	if c.MinWindow.Width <= 0 || c.MinWindow.Height <= 0 {
		return &ValidationError{Path: "min_window", Err: fmt.Errorf("min_window width and height must be > 0")}
	}
	if c.ZIndexBase < 0 {
		return &ValidationError{Path: "z_index_base", Err: fmt.Errorf("z_index_base must be >= 0")}
	}
	switch c.TaskbarClickActive {
	case ActivePolicyMinimize, ActivePolicyClose:
	default:
		return &ValidationError{Path: "taskbar_click_active", Err: fmt.Errorf("taskbar_click_active must be one of: minimize, close")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.ReconcileIntervalSeconds < 0 {
		return &ValidationError{Path: "reconcile_interval_seconds", Err: fmt.Errorf("reconcile_interval_seconds must be >= 0")}
	}
	if len(c.Windows) == 0 {
		return &ValidationError{Path: "windows", Err: fmt.Errorf("windows must not be empty")}
	}

	seen := make(map[string]struct{}, len(c.Windows))
	for i, w := range c.Windows {
		path := fmt.Sprintf("windows.%d", i)
		if err := validateWindow(w); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
		if _, dup := seen[w.ID]; dup {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("duplicate window id %q", w.ID)}
		}
		seen[w.ID] = struct{}{}
	}
	for i, icon := range c.Icons {
		path := fmt.Sprintf("icons.%d", i)
		if strings.TrimSpace(icon.ID) == "" {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("icon id is required")}
		}
		if _, ok := seen[icon.Window]; !ok {
			return &ValidationError{Path: path + ".window", Err: fmt.Errorf("icon %q references unknown window %q", icon.ID, icon.Window)}
		}
	}
	return nil
}

// validateWindow checks a single window declaration.
func validateWindow(w WindowSpec) error {
	id := strings.TrimSpace(w.ID)
	if id == "" {
		return fmt.Errorf("window id is required")
	}
	if id != w.ID || strings.ContainsAny(id, " \t\"'[]#.") {
		return fmt.Errorf("window id %q must not contain whitespace, quotes, brackets, '#' or '.'", w.ID)
	}
	if w.Width < 0 || w.Height < 0 {
		return fmt.Errorf("width and height must be >= 0")
	}
	return nil
}
