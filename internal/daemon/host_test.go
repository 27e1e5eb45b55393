package daemon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/deskwm/internal/config"
)

func TestNewShell_BuildsConfiguredDesktop(t *testing.T) {
	cfg := config.DefaultConfig()
	shell := NewShell(cfg, nil, nil)

	st := shell.State()
	if len(st.Windows) != len(cfg.Windows) {
		t.Fatalf("windows = %d, want %d", len(st.Windows), len(cfg.Windows))
	}
	if got := st.Active(); got != "notes" {
		t.Fatalf("active = %q, want notes", got)
	}
	if st.Canvas.Width != float64(cfg.Canvas.Width) {
		t.Fatalf("canvas width = %v", st.Canvas.Width)
	}
	if shell.Element("start-btn") == nil {
		t.Fatal("taskbar chrome missing")
	}
}

func TestOpenJournal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging = config.LoggingConfig{
		Enabled: true,
		File:    filepath.Join(t.TempDir(), "actions.log"),
	}
	journal, err := OpenJournal(cfg)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}

	shell := NewShell(cfg, nil, journal)
	shell.Open("terminal")
	if err := journal.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "msg=OPEN window=terminal") {
		t.Fatalf("journal = %q, want an OPEN entry", data)
	}
}

func TestOpenJournal_Disabled(t *testing.T) {
	journal, err := OpenJournal(config.DefaultConfig())
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	journal.Log("OPEN", "calc")
}
