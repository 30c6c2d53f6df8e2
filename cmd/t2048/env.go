package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

// env is everything a command needs after startup.
type env struct {
	cfg      config.Config
	logger   *log.Logger
	store    *storage.Store
	shutdown func(context.Context) error
	closers  []io.Closer
}

// loadConfig reads .env and the YAML config, applying global flag overrides.
func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("loading .env: %w", err)
	}

	path := flagConfig
	if path == "" {
		path = os.Getenv("T2048_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the charmbracelet logger at the configured level.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	if level == "" {
		return logger, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// openLogFile opens ~/.t2048/t2048.log for appending. The terminal UI owns
// stdout and stderr while a game runs.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".t2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "t2048.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// setup loads config, logging, storage and telemetry. Local play owns the
// terminal, so its logs go to the log file instead of stderr. A storage
// failure is logged and the command continues without persistence.
func setup(ctx context.Context, mode telemetry.Mode) (*env, error) {
	toFile := mode == telemetry.ModePlay

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}

	var out io.Writer = os.Stderr
	if toFile {
		f, fileErr := openLogFile()
		if fileErr != nil {
			out = io.Discard
		} else {
			out = f
			e.closers = append(e.closers, f)
		}
	}

	e.logger, err = newLogger(out, cfg.Log.Level)
	if err != nil {
		e.close()
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		e.logger.Warn("could not open scores database, scores will not be saved", "path", cfg.Storage.DBPath, "error", err)
	} else {
		e.store = store
		e.closers = append(e.closers, store)
	}

	if cfg.Telemetry.Enabled {
		shutdown, telErr := telemetry.Setup(ctx, telemetry.Options{
			ServiceName: cfg.Telemetry.ServiceName,
			Mode:        mode,
		})
		if telErr != nil {
			e.logger.Warn("telemetry disabled", "error", telErr)
		} else {
			e.shutdown = shutdown
		}
	}

	return e, nil
}

// deps returns the dependencies shared by the UI screens.
func (e *env) deps() tui.Deps {
	return tui.Deps{
		Config: e.cfg,
		Store:  e.store,
		Logger: e.logger,
		Tracer: telemetry.Tracer("session"),
	}
}

// close flushes telemetry and releases storage and log files.
func (e *env) close() {
	if e.shutdown != nil {
		if err := e.shutdown(context.Background()); err != nil && e.logger != nil {
			e.logger.Warn("telemetry shutdown failed", "error", err)
		}
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		//nolint:errcheck // Best-effort cleanup on exit
		e.closers[i].Close()
	}
}
