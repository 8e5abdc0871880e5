package rusty

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/luizaranda/go-users/pkg/internal"
	"github.com/luizaranda/go-users/pkg/telemetry/tracing"
)

const (
	_instrumentationName = "github.com/luizaranda/go-users/pkg/rusty"

	_endpointSpanAttribute = attribute.Key("users.rusty.endpoint")
	_targetSpanAttribute   = attribute.Key("users.rusty.target_id")
)

func newSpan(req *http.Request) (context.Context, trace.Span) {
	tracer := otel.Tracer(_instrumentationName, trace.WithInstrumentationVersion(internal.Version))

	ctx, span := tracer.Start(req.Context(), "rusty "+req.Method, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(semconv.HTTPClientAttributesFromHTTPRequest(req)...)
	span.SetAttributes(
		_endpointSpanAttribute.String(tracing.EndpointTemplate(ctx)),
		_targetSpanAttribute.String(tracing.TargetID(ctx)),
	)

	return ctx, span
}

func recordResponseAttributes(span trace.Span, res *http.Response, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetAttributes(semconv.HTTPAttributesFromHTTPStatusCode(res.StatusCode)...)
	span.SetStatus(semconv.SpanStatusFromHTTPStatusCode(res.StatusCode))
}
