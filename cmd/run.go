package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/parserinator/parserinator/internal/app"
	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/keybind"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/settings"
	"github.com/parserinator/parserinator/internal/store"
)

// LogFileName is the log file inside the data directory.
const LogFileName = "parserinator.log"

// deps holds everything a command needs. Close releases it.
type deps struct {
	DataDir string
	Env     *screen.Env
	Store   *store.Store

	closers []io.Closer
}

func (r *deps) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// resolveDataDir returns the --data-dir flag, then PARSERINATOR_HOME, then
// the XDG data directory.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data-dir"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}
	return store.DefaultDataDir()
}

// openLogger writes JSON logs to the data directory. The terminal belongs
// to the TUI, so nothing is logged to stderr.
func openLogger(dataDir string, verbose bool) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(filepath.Join(dataDir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

// setup loads settings, the question bank, keybinds and the session log.
// Problems that have a fallback become notices instead of errors.
func setup(cmd *cobra.Command) (*deps, error) {
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	settings.LoadEnvFiles(dataDir)

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, logFile, err := openLogger(dataDir, verbose)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	rt := &deps{DataDir: dataDir, closers: []io.Closer{logFile}}
	env := &screen.Env{
		SettingsPath: filepath.Join(dataDir, settings.DefaultFileName),
		Logger:       logger,
	}
	rt.Env = env

	st, err := settings.Load(env.SettingsPath)
	if err != nil {
		env.Notices = append(env.Notices, notice("settings", err))
	}
	if err := st.ApplyEnv(); err != nil {
		env.Notices = append(env.Notices, notice("environment", err))
	}
	if err := st.Validate(); err != nil {
		env.Notices = append(env.Notices, notice("settings", err))
		st = settings.Default()
	}
	env.Settings = &st

	env.Bank = bank.NewStore(filepath.Join(dataDir, bank.DefaultFileName), bank.WithLogger(logger))
	if _, err := env.Bank.Load(); err != nil {
		env.Notices = append(env.Notices, notice("question bank", err))
	}

	keys, err := keybind.Load(filepath.Join(dataDir, keybind.DefaultFileName))
	if err != nil {
		env.Notices = append(env.Notices, notice("keybinds", err))
	}
	env.Keys = keys
	for _, c := range keys.Conflicts() {
		env.Notices = append(env.Notices, "keybind conflict: "+c)
	}
	for _, k := range keys.Printable() {
		env.Notices = append(env.Notices, fmt.Sprintf("keybind %q also types a character; answers cannot contain it", k))
	}

	dbPath, err := store.DBPath(dataDir)
	if err == nil {
		rt.Store, err = store.Open(dbPath)
	}
	if err != nil {
		logger.Error("session log unavailable", "err", err)
		env.Notices = append(env.Notices, notice("session log", err))
	} else {
		rt.closers = append(rt.closers, rt.Store)
		env.EventRepo = rt.Store.EventRepo()
	}

	logger.Debug("startup complete", "data_dir", dataDir, "questions", env.Bank.Len(), "notices", len(env.Notices))
	return rt, nil
}

func notice(what string, err error) string {
	return fmt.Sprintf("%s: %v", what, err)
}

// printNotices reports startup problems for non-interactive commands.
func printNotices(env *screen.Env) {
	for _, n := range env.Notices {
		fmt.Fprintln(os.Stderr, "warning:", n)
	}
}

// requireStore fails when the session log could not be opened.
func requireStore(rt *deps) error {
	if rt.Store == nil {
		return errors.New("session log is unavailable; see the log file for details")
	}
	return nil
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command, startQuiz bool) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	return app.Run(rt.Env, app.Options{StartQuiz: startQuiz})
}
