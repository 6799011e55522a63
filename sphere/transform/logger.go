package transform

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with transform-specific fields.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithGrid adds the grid identity and size.
func (l *Logger) WithGrid(id uint64, points int) *Logger {
	return &Logger{Logger: l.Logger.With("grid", id, "points", points)}
}

// WithOrder adds the maximum order and basis type.
func (l *Logger) WithOrder(nMax int, basisType string) *Logger {
	return &Logger{Logger: l.Logger.With("order", nMax, "basis", basisType)}
}
