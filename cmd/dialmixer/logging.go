package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/phanxgames/dials"
)

// SetupLogger configures structured logging to w and hands the logger to
// the dials package. The terminal frontend passes a file or io.Discard so
// log lines do not tear the screen.
func SetupLogger(cfg *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Env == "development" {
		level = slog.LevelDebug
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)

	slog.SetDefault(logger)
	dials.SetLogger(logger.With("component", "dials"))

	return logger
}
