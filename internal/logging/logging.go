// Package logging builds the structured logger shared by the CLI and the
// HTTP server.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/config"
)

// New returns a logger writing to w. "pretty" renders through pterm for
// terminals, "json" is meant for the server, "text" is plain logfmt.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	case "text":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	default:
		logger := pterm.DefaultLogger.WithLevel(ptermLevel(level)).WithWriter(w)
		return slog.New(pterm.NewSlogHandler(logger))
	}
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func ptermLevel(l slog.Level) pterm.LogLevel {
	switch {
	case l <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case l <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case l <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
