package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the logger described by l. verbose forces debug level.
func NewLogger(l LogConfig, w io.Writer, verbose bool) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
