// Package logger builds the *slog.Logger shared by both programs.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output.
// Staging and production: machine-readable JSON output.
//
// level is parsed by ParseLevel. Both programs pass os.Stderr as w so log
// lines never mix with the menu or query output on stdout.
func New(env, level string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	switch env {
	case "prod", "staging":
		return slog.New(slog.NewJSONHandler(w, opts))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
