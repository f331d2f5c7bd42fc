package screen

import (
	"log/slog"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/keybind"
	"github.com/parserinator/parserinator/internal/settings"
	"github.com/parserinator/parserinator/internal/store"
)

// Env carries the dependencies shared by all screens.
type Env struct {
	Bank         *bank.Store
	Keys         keybind.Map
	Settings     *settings.Settings
	SettingsPath string

	// EventRepo records session tallies. Nil disables history.
	EventRepo store.EventRepo
	Logger    *slog.Logger

	// Notices are non-fatal startup problems shown on the home screen.
	Notices []string
}

// SaveSettings writes the current settings, logging failures.
func (e *Env) SaveSettings() {
	if e.SettingsPath == "" {
		return
	}
	if err := e.Settings.Save(e.SettingsPath); err != nil {
		e.Log().Warn("failed to save settings", "path", e.SettingsPath, "err", err)
	}
}

// Log returns the logger, falling back to slog.Default.
func (e *Env) Log() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
