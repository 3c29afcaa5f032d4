package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/marcus/modalfocus/internal/config"
)

// newLogger returns a JSON logger writing to path at the given level. The
// terminal belongs to the UI, so without a path logs are discarded. The
// returned close function is never nil.
func newLogger(path, level string) (*slog.Logger, func() error, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	return logger, closeFn, nil
}

// loggerFromConfig builds the logger configured in .modalfocus/config.json.
func loggerFromConfig() (*slog.Logger, func() error, error) {
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		return nil, nil, err
	}
	return newLogger(cfg.LogFile, cfg.LogLevel)
}
