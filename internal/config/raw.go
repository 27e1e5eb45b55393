package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawSize struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawLoggingConfig struct {
	Enabled   *bool   `yaml:"enabled"`
	Level     *string `yaml:"level"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

// RawConfig mirrors the YAML file. Nil fields were not set by the file.
// Windows and icons are replaced as whole lists.
type RawConfig struct {
	Include                  IncludeList       `yaml:"include"`
	Canvas                   *RawSize          `yaml:"canvas"`
	TaskbarHeight            *int              `yaml:"taskbar_height"`
	MinWindow                *RawSize          `yaml:"min_window"`
	ZIndexBase               *int              `yaml:"z_index_base"`
	TaskbarClickActive       *ActivePolicy     `yaml:"taskbar_click_active"`
	Windows                  []WindowSpec      `yaml:"windows"`
	Icons                    []IconSpec        `yaml:"icons"`
	LogLevel                 *string           `yaml:"log_level"`
	Logging                  *RawLoggingConfig `yaml:"logging"`
	ReconcileIntervalSeconds *int              `yaml:"reconcile_interval_seconds"`
}

func (r RawConfig) merge(overlay RawConfig) RawConfig {
	out := r
	out.Include = nil
	if overlay.Canvas != nil {
		merged := mergeRawSize(out.Canvas, overlay.Canvas)
		out.Canvas = &merged
	}
	if overlay.TaskbarHeight != nil {
		out.TaskbarHeight = overlay.TaskbarHeight
	}
	if overlay.MinWindow != nil {
		merged := mergeRawSize(out.MinWindow, overlay.MinWindow)
		out.MinWindow = &merged
	}
	if overlay.ZIndexBase != nil {
		out.ZIndexBase = overlay.ZIndexBase
	}
	if overlay.TaskbarClickActive != nil {
		out.TaskbarClickActive = overlay.TaskbarClickActive
	}
	if overlay.Windows != nil {
		out.Windows = overlay.Windows
	}
	if overlay.Icons != nil {
		out.Icons = overlay.Icons
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Logging != nil {
		merged := mergeRawLogging(out.Logging, overlay.Logging)
		out.Logging = &merged
	}
	if overlay.ReconcileIntervalSeconds != nil {
		out.ReconcileIntervalSeconds = overlay.ReconcileIntervalSeconds
	}
	return out
}

func mergeRawSize(base *RawSize, overlay *RawSize) RawSize {
	var out RawSize
	if base != nil {
		out = *base
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	return out
}

func mergeRawLogging(base *RawLoggingConfig, overlay *RawLoggingConfig) RawLoggingConfig {
	var out RawLoggingConfig
	if base != nil {
		out = *base
	}
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.Level != nil {
		out.Level = overlay.Level
	}
	if overlay.File != nil {
		out.File = overlay.File
	}
	if overlay.MaxSizeMB != nil {
		out.MaxSizeMB = overlay.MaxSizeMB
	}
	if overlay.MaxFiles != nil {
		out.MaxFiles = overlay.MaxFiles
	}
	return out
}
