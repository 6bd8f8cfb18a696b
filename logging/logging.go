// Package logging builds the engine's leveled logger
//
// The terminal belongs to the game, so log records never go to stdout.
// They are written to a file when one is configured and discarded otherwise.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelFatal ranks above error; Fatal logs at this level
const LevelFatal = slog.Level(12)

// ParseLevel maps debug, info, warn, error and fatal to slog levels
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// Options configures New
type Options struct {
	Level slog.Level
	// File receives log records; empty discards them
	File string
	// Writer overrides File when set
	Writer io.Writer
}

// New creates a logger and returns a closer for any file it opened
func New(opts Options) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	w := opts.Writer
	closer := noop
	if w == nil && opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = sync.OnceValue(f.Close)
	}
	if w == nil {
		return slog.New(slog.DiscardHandler), noop, nil
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: opts.Level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelFatal {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	})
	return slog.New(h), closer, nil
}

// Fatal logs msg at LevelFatal; exiting is left to the caller
func Fatal(log *slog.Logger, msg string, args ...any) {
	log.Log(context.Background(), LevelFatal, msg, args...)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
