// Package log provides a structured logging interface for glmcore.
//
// The interface is slog-compatible and has three backends: the standard
// log/slog JSON handler configured by SetupLogger, a zerolog-backed logger,
// and an in-memory TestLogger. Fitting code logs through the package-level
// default returned by GetLogger unless a model carries its own logger.
//
// Example usage:
//
//	logger := log.NewZerologLogger(os.Stderr, log.LevelDebug).With(
//	    log.ModelNameKey, "GLM",
//	    log.FamilyKey, "bernoulli",
//	)
//	logger.Info("IRLS finished",
//	    log.IterationKey, 6,
//	    log.DevianceKey, 16.06,
//	)

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are key-value pairs. If the first field passed to Error is an error
// value, backends attach it under the "error" key together with its stack trace.
type Logger interface {
	// Debug logs a debug-level message. The IRLS loop emits one per iteration.
	Debug(msg string, fields ...any)

	// Info logs an info-level message.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message.
	Warn(msg string, fields ...any)

	// Error logs an error-level message.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Callers use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
