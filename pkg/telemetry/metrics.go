package telemetry

import (
	"context"
	"time"
)

// Count tracks how many times something happened per second.
func Count(ctx context.Context, name string, value int64, tags []string) {
	FromContext(ctx).Count(name, value, tags)
}

// Incr is Count of 1.
func Incr(ctx context.Context, name string, tags []string) {
	FromContext(ctx).Incr(name, tags)
}

// Gauge measures the value of a metric at a particular time.
func Gauge(ctx context.Context, name string, value float64, tags []string) {
	FromContext(ctx).Gauge(name, value, tags)
}

// Histogram tracks the statistical distribution of a set of values.
func Histogram(ctx context.Context, name string, value float64, tags []string) {
	FromContext(ctx).Histogram(name, value, tags)
}

// Timing sends a duration.
func Timing(ctx context.Context, name string, value time.Duration, tags []string) {
	FromContext(ctx).Timing(name, value, tags)
}
