package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// coreWithLevel restricts a zapcore.Core to an AtomicLevel.
//
// The wrapped core keeps its own level, so coreWithLevel can only make logging
// more restrictive. Loggers built by NewProductionLogger use a Debug core
// underneath for that reason.
type coreWithLevel struct {
	zapcore.Core

	lvl *zap.AtomicLevel
}

func (c *coreWithLevel) Enabled(level zapcore.Level) bool {
	return c.lvl.Enabled(level) && c.Core.Enabled(level)
}

func (c *coreWithLevel) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.lvl.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

// With must re-wrap because zap returns a fresh core carrying the fields.
func (c *coreWithLevel) With(fields []zapcore.Field) zapcore.Core {
	return &coreWithLevel{
		Core: c.Core.With(fields),
		lvl:  c.lvl,
	}
}

// wrapCoreWithLevel replaces the current level restriction of a logger, if
// any, with l.
func wrapCoreWithLevel(l *zap.AtomicLevel) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		if lvlCore, ok := core.(*coreWithLevel); ok {
			core = lvlCore.Core
		}
		return &coreWithLevel{Core: core, lvl: l}
	})
}
