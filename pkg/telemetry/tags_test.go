package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMetricTagValue(t *testing.T) {
	tests := map[string]string{
		"":                  "",
		"/":                 "/",
		"/api/users":        "/api/users",
		"/api/users/{id}/":  "/api/users/_id",
		"/api/users/{id}":   "/api/users/_id",
		"/api/{org}/{user}": "/api/_org/_user",
	}

	for in, want := range tests {
		assert.Equal(t, want, SanitizeMetricTagValue(in), in)
	}
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"method:get", "status:200", "ok:true"}, Tags("method", "get", "status", 200, "ok", true))
	assert.Panics(t, func() { Tags("odd") })
	assert.Panics(t, func() { Tags("bad", 1.5) })
}

func TestFromContext_DefaultsToNoOp(t *testing.T) {
	assert.Same(t, DefaultTracer, FromContext(context.Background()))

	c := NewNoOpClient()
	ctx := Context(context.Background(), c)
	assert.Same(t, c, FromContext(ctx))

	assert.NotPanics(t, func() {
		Incr(ctx, "users.client.test", nil)
		_, span := StartSpan(ctx, "noop")
		span.SetLabel("k", "v")
		span.Finish()
	})
}
