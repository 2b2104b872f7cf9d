// Package logging provides structured logger construction and context
// propagation using the standard library slog package.
//
// Logger construction:
//
//	w, closeFn, err := logging.OpenOutput(cfg.Log.Output)
//	logger := logging.New("info", "json", w)
//
// The terminal UI owns stdout and stderr while it runs, so the playground
// normally logs to a file or discards logs entirely.
//
// Error logging convention for the pipeline:
//
//	logger.ErrorContext(ctx, "engine call panicked",
//	    slog.String("operation", "SyncController.Sync"),
//	    slog.Uint64("source_version", doc.Version),
//	    slog.Any("error", err),
//	)
//
// Expected-invalid source text is never logged at error level.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output destinations with special meaning for OpenOutput.
const (
	OutputDiscard = "discard"
	OutputStderr  = "stderr"
)

// contextKey is the unexported key type for storing loggers in context.
type contextKey struct{}

// New creates a configured *slog.Logger.
//
// The level parameter sets the minimum log level. Valid values are "debug",
// "info", "warn", and "error". Unrecognized values default to info.
//
// The format parameter selects the output handler. "text" uses
// slog.NewTextHandler; all other values (including "json") use
// slog.NewJSONHandler.
//
// When level is "debug", source code location is included in log output.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// OpenOutput resolves a log destination. "discard" drops everything,
// "stderr" writes to standard error, any other value is a file path opened
// for appending. The returned close function is never nil.
func OpenOutput(dest string) (io.Writer, func() error, error) {
	switch dest {
	case "", OutputDiscard:
		return io.Discard, func() error { return nil }, nil
	case OutputStderr:
		return os.Stderr, func() error { return nil }, nil
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output %s: %w", dest, err)
	}
	return f, f.Close, nil
}

// WithLogger returns a new context with the given logger stored in it.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a *slog.Logger from the context.
// If no logger is stored, it returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// parseLevel converts a level string to slog.Level.
// Unrecognized values default to slog.LevelInfo.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
