package app

import (
	"io"
	"log/slog"
)

// DefaultLogLevel is the level used when none, or an unknown one, is
// configured. Generation is silent unless something needs attention.
const DefaultLogLevel = "warn"

// newLogger builds the run's logger. Level names are matched without regard
// to case; anything slog cannot parse falls back to DefaultLogLevel. It does
// not set the global logger.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(logW, opts))
	}
	return slog.New(slog.NewTextHandler(logW, opts))
}
