package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A Level is a logging priority. Higher levels are more important.
type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

// An AtomicLevel is a logging level that can be changed at runtime for a
// whole tree of loggers. It is also an http.Handler serving a JSON endpoint
// to read and alter the level.
type AtomicLevel = zap.AtomicLevel

// NewAtomicLevelAt returns an AtomicLevel enabled at l and above.
func NewAtomicLevelAt(l Level) AtomicLevel {
	return zap.NewAtomicLevelAt(l)
}

// ParseLevel parses names such as "debug" or "WARN". Empty text is InfoLevel.
func ParseLevel(text string) (Level, error) {
	if text == "" {
		return InfoLevel, nil
	}
	return zapcore.ParseLevel(text)
}
