// Package logger provides the structured zerolog logger used by every
// binary, with helpers for carrying it through a context.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger.
type ContextKey string

// LoggerKey is the context key for the logger instance.
const LoggerKey ContextKey = "logger"

// New creates the default console logger: timestamped, caller-annotated,
// writing to stdout.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Caller().Logger()
}

// NewWithWriter creates a structured logger writing to w. Used by tests
// and by batch runs that capture their own log stream.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

// NewWithLevel creates the default logger restricted to the given level.
func NewWithLevel(level zerolog.Level) zerolog.Logger {
	return New().Level(level)
}

// WithContext attaches the logger to the context.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context, or a default logger
// when none was attached.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New()
}

// WithFields returns a child logger carrying the given structured fields.
func WithFields(logger zerolog.Logger, fields map[string]interface{}) zerolog.Logger {
	lc := logger.With()
	for k, v := range fields {
		lc = lc.Interface(k, v)
	}
	return lc.Logger()
}
