package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amonks/ordoflow/internal/config"
	"github.com/amonks/ordoflow/internal/markdown"
	"github.com/amonks/ordoflow/internal/paths"
	"github.com/amonks/ordoflow/internal/ui"
	"github.com/amonks/ordoflow/task"
	"github.com/spf13/cobra"
)

// app holds what a command needs to talk to the task list.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *task.SQLiteStore
	manager *task.Manager
	closers []io.Closer
}

func configureOutput(cmd *cobra.Command, args []string) error {
	ui.ConfigureColors()
	return nil
}

// loadConfig reads the config files and applies the persistent flags.
func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if rootTheme != "" {
		cfg.UI.Theme = strings.ToLower(strings.TrimSpace(rootTheme))
	}
	if rootLogLevel != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(rootLogLevel))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp loads config, opens the database and loads the first snapshot.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	dbPath, err := cfg.DatabasePath(rootDBPath, os.Getenv)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Debug("opening task database", "path", dbPath)

	store, err := task.OpenSQLite(ctx, task.SQLiteOptions{Path: dbPath, Logger: logger})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store
	logger.Debug("task database ready", "path", store.Path())

	a.manager = task.NewManager(store, task.ManagerOptions{Logger: logger})
	if err := a.manager.Reload(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the database and the log file.
func (a *app) Close() error {
	var firstErr error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			firstErr = err
		}
	}
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// palette resolves the configured theme. Without color output the light
// palette is used and the terminal is never queried.
func (a *app) palette() ui.Palette {
	if !ui.ColorEnabled() {
		return ui.LightPalette
	}
	return ui.ResolvePalette(a.cfg.UI.Theme)
}

func (a *app) markdownStyle() markdown.Style {
	if !ui.ColorEnabled() {
		return markdown.StyleASCII
	}
	if a.palette().Name == ui.DarkPalette.Name {
		return markdown.StyleDark
	}
	return markdown.StyleLight
}

// newLogger builds the text logger for the configured level. Output goes
// to stderr unless a log file is configured.
func newLogger(cfg config.Log) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("%w: log level %q", config.ErrInvalidValue, cfg.Level)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = file
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
