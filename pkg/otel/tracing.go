package otel

import (
	"context"

	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

func startTracerProvider(ctx context.Context, cfg Config, res *resource.Resource) (ShutdownFunc, error) {
	client := otlptracegrpc.NewClient(otlptracegrpc.WithEndpoint(cfg.endpoint()), otlptracegrpc.WithInsecure())
	exp, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, err
	}

	tp := newTracerProvider(exp, res, cfg.SampleRatio)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(newPropagator())

	return tp.Shutdown, nil
}

func newTracerProvider(exp trace.SpanExporter, res *resource.Resource, ratio float64) *trace.TracerProvider {
	return trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
	)
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
		b3.New(b3.WithInjectEncoding(b3.B3MultipleHeader)),
	)
}
