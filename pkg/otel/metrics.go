package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const (
	_collectTimeout  = 35 * time.Second
	_collectPeriod   = 30 * time.Second
	_minimumInterval = time.Minute
)

// Milliseconds, wider than the SDK defaults to fit slow API calls.
var _histogramBuckets = []float64{5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000, 25000, 50000, 100000}

func startMetricsProvider(ctx context.Context, cfg Config, res *resource.Resource) (ShutdownFunc, error) {
	exp, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(cfg.endpoint()), otlpmetricgrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	mp := newMeterProvider(exp, res)
	otel.SetMeterProvider(mp)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval)); err != nil {
		_ = mp.Shutdown(ctx)
		return nil, err
	}

	return mp.Shutdown, nil
}

func newMeterProvider(exp metric.Exporter, res *resource.Resource) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(exp,
			metric.WithTimeout(_collectTimeout),
			metric.WithInterval(_collectPeriod),
		)),
		metric.WithView(metric.NewView(
			metric.Instrument{Name: "*", Kind: metric.InstrumentKindHistogram},
			metric.Stream{
				Aggregation: metric.AggregationExplicitBucketHistogram{Boundaries: _histogramBuckets},
			},
		)),
	)
}
