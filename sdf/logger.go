package sdf

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with consistent field names for load and combine
// events.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogLoad logs the outcome of loading one container.
func (l *Logger) LogLoad(ctx context.Context, path string, fields, skipped int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "load completed",
		"path", path,
		"fields", fields,
		"skipped", skipped,
	)
}

// LogSkip logs an ignored field.
func (l *Logger) LogSkip(ctx context.Context, field string) {
	l.DebugContext(ctx, "field skipped",
		"field", field,
	)
}

// LogDrop logs a field dropped by a lenient combine.
func (l *Logger) LogDrop(ctx context.Context, field string, err error) {
	l.WarnContext(ctx, "ignoring field because shapes do not match",
		"field", field,
		"reason", err,
	)
}

// LogCombine logs a completed combine.
func (l *Logger) LogCombine(ctx context.Context, datasets, fields, dropped int) {
	if dropped > 0 {
		l.WarnContext(ctx, "combine completed with dropped fields",
			"datasets", datasets,
			"fields", fields,
			"dropped", dropped,
		)
		return
	}
	l.DebugContext(ctx, "combine completed",
		"datasets", datasets,
		"fields", fields,
	)
}
