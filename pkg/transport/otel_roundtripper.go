package transport

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/luizaranda/go-users/pkg/telemetry/tracing"
)

// OpenTelemetryDecorator returns a decorator creating a client span per
// round trip and injecting the trace context into the request headers.
//
// Spans are named after the endpoint template when the request context has
// one, so /api/users/{id} yields a single span name for every user id.
func OpenTelemetryDecorator() RoundTripDecorator {
	return func(base http.RoundTripper) http.RoundTripper {
		return otelhttp.NewTransport(base, otelhttp.WithSpanNameFormatter(spanName))
	}
}

func spanName(_ string, req *http.Request) string {
	if template := tracing.EndpointTemplate(req.Context()); template != "" {
		return "HTTP " + req.Method + " " + template
	}
	return "HTTP " + req.Method
}
