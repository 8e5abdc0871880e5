package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
)

// Start installs global trace and meter providers exporting to
// cfg.Endpoint, and the W3C, baggage and B3 propagators. The returned
// function must be called before exiting to flush pending data.
func Start(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceNameKey.String(cfg.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("otel: building resource: %w", err)
	}

	shutdownTracing, err := startTracerProvider(ctx, cfg, res)
	if err != nil {
		return nil, fmt.Errorf("otel: starting tracer provider: %w", err)
	}

	shutdownMetrics, err := startMetricsProvider(ctx, cfg, res)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("otel: starting meter provider: %w", err)
	}

	return joinShutdown(shutdownTracing, shutdownMetrics), nil
}
