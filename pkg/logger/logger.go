// Package logger provides centralized slog.Logger construction for the
// gateway binaries. Output is text or JSON on stderr.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls logger construction.
type Options struct {
	Level     string // debug, info, warn, error
	Format    string // text, json
	AddSource bool
	// Attrs are attached to every record, e.g. service and version.
	Attrs []slog.Attr
}

// New creates a *slog.Logger on stderr with the given level and format.
func New(level, format string) *slog.Logger {
	return NewWithOptions(os.Stderr, Options{Level: level, Format: format})
}

// NewWithWriter creates a *slog.Logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	return NewWithOptions(w, Options{Level: level, Format: format})
}

// NewWithOptions creates a *slog.Logger writing to w configured by opts.
func NewWithOptions(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}

	if len(opts.Attrs) > 0 {
		handler = handler.WithAttrs(opts.Attrs)
	}

	return slog.New(handler)
}

// Component returns a child logger tagged with the component name.
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", name)
}

// Discard returns a logger that drops every record. Handy in tests and for
// optional logger fields.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a level string to slog.Level.
// Recognized values: "debug", "warn", "error". Everything else returns LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
