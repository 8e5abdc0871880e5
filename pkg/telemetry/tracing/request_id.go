package tracing

import (
	"context"
)

// RequestIDHeader is the header carrying the request id on outgoing requests.
const RequestIDHeader = "X-Request-Id"

type requestIDCtxKey struct{}

// WithRequestID sets the request id to forward on outgoing requests.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

// RequestID returns the request id stored in ctx, or empty.
func RequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDCtxKey{}).(string)
	return value
}
