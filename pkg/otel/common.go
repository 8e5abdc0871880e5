// Package otel sets up the global OpenTelemetry trace and meter providers,
// exporting over OTLP/gRPC.
package otel

import (
	"context"
	"errors"
)

// DefaultEndpoint is the host:port of the OTLP collector used when Config
// has none.
const DefaultEndpoint = "localhost:4317"

// Config tells Start where and what to export.
type Config struct {
	// Endpoint is the host:port of the OTLP gRPC collector.
	Endpoint string

	// ServiceName is reported as the service.name resource attribute.
	ServiceName string

	// SampleRatio is the fraction of root traces sampled, between 0 and 1.
	// Children follow their parent decision.
	SampleRatio float64
}

func (c Config) endpoint() string {
	if c.Endpoint == "" {
		return DefaultEndpoint
	}
	return c.Endpoint
}

// ShutdownFunc flushes and stops what Start set up.
type ShutdownFunc func(ctx context.Context) error

func joinShutdown(funcs ...ShutdownFunc) ShutdownFunc {
	return func(ctx context.Context) error {
		var errs []error
		for _, fn := range funcs {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}
}
