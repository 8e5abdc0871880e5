package log

import (
	"context"
)

type logCtxKey struct{}

// Context returns a copy of ctx carrying l. The package level functions
// (Debug, Info, ...) log through the logger found in the context.
func Context(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, l)
}

// FromContext returns the logger stored by Context, or DefaultLogger.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(logCtxKey{}).(Logger); ok && l != nil {
		return l
	}
	return DefaultLogger
}

// Named returns a context whose logger has s appended to its name.
func Named(ctx context.Context, s string) context.Context {
	return Context(ctx, FromContext(ctx).Named(s))
}

// With returns a context whose logger carries the given fields.
func With(ctx context.Context, fields ...Field) context.Context {
	return Context(ctx, FromContext(ctx).With(fields...))
}

// WithLevel returns a context whose logger only logs at lvl and above.
func WithLevel(ctx context.Context, lvl Level) context.Context {
	return Context(ctx, FromContext(ctx).WithLevel(lvl))
}

// Enabled reports whether the context logger would log at lvl. Use it to
// skip building expensive fields.
func Enabled(ctx context.Context, lvl Level) bool {
	return FromContext(ctx).Level().Enabled(lvl)
}

// Debug logs msg at DebugLevel with the context logger.
func Debug(ctx context.Context, msg string, fields ...Field) {
	FromContext(ctx).Debug(msg, fields...)
}

// Info logs msg at InfoLevel with the context logger.
func Info(ctx context.Context, msg string, fields ...Field) {
	FromContext(ctx).Info(msg, fields...)
}

// Warn logs msg at WarnLevel with the context logger.
func Warn(ctx context.Context, msg string, fields ...Field) {
	FromContext(ctx).Warn(msg, fields...)
}

// Error logs msg at ErrorLevel with the context logger.
func Error(ctx context.Context, msg string, fields ...Field) {
	FromContext(ctx).Error(msg, fields...)
}
