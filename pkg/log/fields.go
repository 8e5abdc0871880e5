package log

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Field is an alias for zap.Field.
type Field = zap.Field

// String constructs a field with the given key and value.
func String(key string, val string) Field {
	return zap.String(key, val)
}

// Strings constructs a field that carries a slice of strings.
func Strings(key string, ss []string) Field {
	return zap.Strings(key, ss)
}

// Int constructs a field with the given key and value.
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

// Int64 constructs a field with the given key and value.
func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

// Bool constructs a field that carries a bool.
func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

// Duration constructs a field with the given key and value.
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// Stringer constructs a field whose value is produced lazily by val.String().
func Stringer(key string, val fmt.Stringer) Field {
	return zap.Stringer(key, val)
}

// ByteString constructs a field that carries UTF-8 encoded text as a []byte.
func ByteString(key string, val []byte) Field {
	return zap.ByteString(key, val)
}

// Any picks the best representation for value, falling back to reflection.
func Any(key string, value any) Field {
	return zap.Any(key, value)
}

// Err is shorthand for NamedErr("error", err).
func Err(err error) Field {
	return zap.Error(err)
}

// NamedErr constructs a field that lazily stores err.Error() under key.
// A nil error yields a no-op field.
func NamedErr(key string, err error) Field {
	return zap.NamedError(key, err)
}
