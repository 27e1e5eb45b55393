package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw over DefaultConfig. It reports whether the
// built-in desktop was kept because the file declared no windows.
func BuildEffectiveConfig(raw RawConfig) (*Config, bool) {
	cfg := DefaultConfig()

	if raw.Canvas != nil {
		cfg.Canvas.Width = derefInt(raw.Canvas.Width, cfg.Canvas.Width)
		cfg.Canvas.Height = derefInt(raw.Canvas.Height, cfg.Canvas.Height)
	}
	if raw.TaskbarHeight != nil {
		cfg.TaskbarHeight = *raw.TaskbarHeight
	}
	if raw.MinWindow != nil {
		cfg.MinWindow.Width = derefInt(raw.MinWindow.Width, cfg.MinWindow.Width)
		cfg.MinWindow.Height = derefInt(raw.MinWindow.Height, cfg.MinWindow.Height)
	}
	if raw.ZIndexBase != nil {
		cfg.ZIndexBase = *raw.ZIndexBase
	}
	if raw.TaskbarClickActive != nil {
		cfg.TaskbarClickActive = *raw.TaskbarClickActive
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.ReconcileIntervalSeconds != nil {
		cfg.ReconcileIntervalSeconds = *raw.ReconcileIntervalSeconds
	}
	if raw.Logging != nil {
		if raw.Logging.Enabled != nil {
			cfg.Logging.Enabled = *raw.Logging.Enabled
		}
		if raw.Logging.Level != nil {
			cfg.Logging.Level = *raw.Logging.Level
		}
		if raw.Logging.File != nil {
			cfg.Logging.File = *raw.Logging.File
		}
		if raw.Logging.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *raw.Logging.MaxSizeMB
		}
		if raw.Logging.MaxFiles != nil {
			cfg.Logging.MaxFiles = *raw.Logging.MaxFiles
		}
	}

	builtin := raw.Windows == nil
	if !builtin {
		cfg.Windows = append([]WindowSpec(nil), raw.Windows...)
		// Builtin icons point at builtin windows; a custom desktop starts bare.
		cfg.Icons = nil
	}
	if raw.Icons != nil {
		cfg.Icons = append([]IconSpec(nil), raw.Icons...)
	}
	for i := range cfg.Windows {
		if cfg.Windows[i].Title == "" {
			cfg.Windows[i].Title = "Window"
		}
	}

	return cfg, builtin
}

func derefInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
