package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CheckedEntry is an alias for zapcore.CheckedEntry. It must not be retained
// after calling its Write method.
type CheckedEntry = zapcore.CheckedEntry

// SugaredLogger is an alias for zap.SugaredLogger, the loosely typed logging API.
type SugaredLogger = zap.SugaredLogger

// Logger is the logging surface used across the module. All implementations
// must be safe for concurrent use.
type Logger interface {
	// Check returns a CheckedEntry if logging a message at lvl is enabled.
	Check(lvl Level, msg string) *CheckedEntry

	// Named adds a new path segment to the logger's name.
	Named(s string) Logger

	// Sugar returns the sugared variant of the logger.
	Sugar() *SugaredLogger

	// With creates a child logger carrying the given fields.
	With(fields ...Field) Logger

	// WithLevel creates a child logger restricted to lvl and above.
	WithLevel(lvl Level) Logger

	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Level reports the minimum enabled level for this logger.
	Level() Level

	// Sync flushes any buffered entries.
	Sync() error
}
