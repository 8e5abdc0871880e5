package transport

import (
	"net/http"
	"time"

	"github.com/luizaranda/go-users/pkg/log"
	"github.com/luizaranda/go-users/pkg/telemetry/tracing"
)

// LogDecorator returns a RoundTripDecorator logging every round trip.
//
// For more information check LogRoundTripper struct.
func LogDecorator(logger log.Logger) RoundTripDecorator {
	return func(base http.RoundTripper) http.RoundTripper {
		return &LogRoundTripper{Transport: base, Logger: logger}
	}
}

// LogRoundTripper logs outgoing requests at debug level and failed round
// trips at warn level.
//
// Entries are written to the logger found in the request context, falling
// back to Logger when the context has none.
type LogRoundTripper struct {
	Transport http.RoundTripper
	Logger    log.Logger
}

func (t *LogRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if t.Logger != nil && log.FromContext(ctx) == log.DefaultLogger {
		ctx = log.Context(ctx, t.Logger)
	}

	ctx = log.With(ctx,
		log.String("method", req.Method),
		log.String("url", req.URL.Redacted()),
		log.String("request_id", req.Header.Get(tracing.RequestIDHeader)),
	)

	start := time.Now()
	res, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Warn(ctx, "http request failed", log.Duration("elapsed", elapsed), log.Err(err))
		return res, err
	}

	log.Debug(ctx, "http request",
		log.Int("status", res.StatusCode),
		log.Duration("elapsed", elapsed),
	)

	return res, nil
}
