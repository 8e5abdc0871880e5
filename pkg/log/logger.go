package log

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger is used when a context carries no logger. It discards
// everything until replaced.
var DefaultLogger Logger = &logger{Logger: zap.NewNop()}

// NewProductionLogger builds a logger enabled at lvl and above. The level
// can be changed later through lvl.
//
// Defaults: JSON encoding to stderr, caller annotation, stacktraces on
// ErrorLevel and above.
func NewProductionLogger(lvl *AtomicLevel, opts ...Option) Logger {
	cfg := logConfig{
		levelKey:   "level",
		caller:     true,
		stacktrace: true,
		writer:     _stderr,
		encoder:    zapcore.NewJSONEncoder,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var zapOptions []zap.Option
	if cfg.caller {
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(cfg.callerSkip))
	}
	if cfg.stacktrace {
		zapOptions = append(zapOptions, zap.AddStacktrace(zap.ErrorLevel))
	}
	zapOptions = append(zapOptions, wrapCoreWithLevel(lvl))

	return &logger{Logger: zap.New(newCore(cfg), zapOptions...)}
}

type logger struct {
	*zap.Logger
}

var _ Logger = (*logger)(nil)

func (l *logger) WithLevel(level Level) Logger {
	lvl := zap.NewAtomicLevelAt(level)
	return &logger{Logger: l.Logger.WithOptions(wrapCoreWithLevel(&lvl))}
}

func (l *logger) With(fields ...Field) Logger {
	return &logger{Logger: l.Logger.With(fields...)}
}

func (l *logger) Named(s string) Logger {
	return &logger{Logger: l.Logger.Named(s)}
}

func (l *logger) Level() Level {
	return zapcore.LevelOf(l.Core())
}

// WriteSyncer is an io.Writer that can flush.
type WriteSyncer interface {
	io.Writer
	Sync() error
}

type logConfig struct {
	levelKey   string
	caller     bool
	callerSkip int
	stacktrace bool
	writer     WriteSyncer
	encoder    func(zapcore.EncoderConfig) zapcore.Encoder
}

// Option configures a Logger built by NewProductionLogger.
type Option func(*logConfig)

// WithLevelKey sets the key of the level entry. Default "level".
func WithLevelKey(key string) Option {
	return func(c *logConfig) { c.levelKey = key }
}

// WithCaller toggles the "caller" entry. Default true.
func WithCaller(b bool) Option {
	return func(c *logConfig) { c.caller = b }
}

// WithCallerSkip skips extra frames when resolving the caller.
func WithCallerSkip(skip int) Option {
	return func(c *logConfig) { c.callerSkip = skip }
}

// WithStacktraceOnError toggles stacktraces on ErrorLevel and above. Default true.
func WithStacktraceOnError(b bool) Option {
	return func(c *logConfig) { c.stacktrace = b }
}

// WithJSONEncoding encodes entries as JSON objects. This is the default.
func WithJSONEncoding() Option {
	return func(c *logConfig) { c.encoder = zapcore.NewJSONEncoder }
}

// WithConsoleEncoding encodes entries in a human friendly format.
func WithConsoleEncoding() Option {
	return func(c *logConfig) { c.encoder = zapcore.NewConsoleEncoder }
}

// WithWriter sets the destination of log entries. Default is stderr.
func WithWriter(w WriteSyncer) Option {
	return func(c *logConfig) { c.writer = w }
}

// Writes to stderr are serialized across every logger built by this package.
var _stderr = zapcore.Lock(zapcore.AddSync(os.Stderr))

func newCore(cfg logConfig) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       cfg.levelKey,
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     rfc3339MicroTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	return zapcore.NewCore(cfg.encoder(encoderConfig), cfg.writer, zapcore.DebugLevel)
}

// rfc3339MicroTimeEncoder writes UTC timestamps with fixed microsecond width.
func rfc3339MicroTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	const RFC3339Micro = "2006-01-02T15:04:05.000000Z07:00"

	enc.AppendString(t.UTC().Format(RFC3339Micro))
}
