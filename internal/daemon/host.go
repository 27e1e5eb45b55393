package daemon

import (
	"log/slog"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/eventlog"
	"github.com/1broseidon/deskwm/internal/platform/memdom"
)

// NewShell builds the desktop declared by cfg on a fresh in-memory
// document and attaches a shell to it.
func NewShell(cfg *config.Config, logger *slog.Logger, journal *eventlog.Logger) *desktop.Shell {
	doc := memdom.New()
	desktop.Populate(doc, doc.Body(), cfg)

	opts := desktop.OptionsFromConfig(cfg)
	opts.Logger = logger
	opts.Journal = journal
	return desktop.New(doc, opts)
}

// OpenJournal opens the action journal configured by cfg. A disabled
// journal is returned as a no-op logger.
func OpenJournal(cfg *config.Config) (*eventlog.Logger, error) {
	lc := cfg.GetLoggingConfig()
	return eventlog.New(eventlog.Config{
		Enabled:   lc.Enabled,
		Level:     eventlog.ParseLevel(lc.Level),
		FilePath:  lc.File,
		MaxSizeMB: lc.MaxSizeMB,
		MaxFiles:  lc.MaxFiles,
	})
}
