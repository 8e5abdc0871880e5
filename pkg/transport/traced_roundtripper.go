package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"net/http/httptrace"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/luizaranda/go-users/pkg/telemetry"
	"github.com/luizaranda/go-users/pkg/telemetry/tracing"
)

const (
	_httpRequestMetric           = "users.http.client.request.time"
	_httpResponseFullyReadMetric = "users.http.client.response_fully_read.time"

	// Recorded only with client trace enabled.
	_httpDNSTimingMetric                  = "users.http.client.dns.time"
	_httpTCPConnectTimingMetric           = "users.http.client.tcp_connect.time"
	_httpTLSHandshakeTimingMetric         = "users.http.client.tls_handshake.time"
	_httpGotConnectionTimingMetric        = "users.http.client.got_connection.time"
	_httpWroteRequestTimingMetric         = "users.http.client.request_written.time"
	_httpGotFirstResponseByteTimingMetric = "users.http.client.response_first_byte.time"
)

// TraceDecorator returns a RoundTripDecorator recording request timings and
// New Relic external segments. With clientTrace the connection phases (DNS,
// TCP connect, TLS handshake, first byte) are timed as well.
//
// For more information check TracedRoundTripper struct.
func TraceDecorator(clientTrace bool) RoundTripDecorator {
	return func(base http.RoundTripper) http.RoundTripper {
		return &TracedRoundTripper{Transport: base, ClientTrace: clientTrace}
	}
}

// TracedRoundTripper instruments outgoing requests.
//
// Metrics go through the telemetry.Client found in the request context and
// are tagged with the target id set by tracing.WithTargetID. The New Relic
// segment is only recorded when the context carries a transaction.
type TracedRoundTripper struct {
	Transport   http.RoundTripper
	ClientTrace bool
}

func (t *TracedRoundTripper) RoundTrip(request *http.Request) (*http.Response, error) {
	// StartExternalSegment adds distributed tracing headers to request.
	segment := newrelic.StartExternalSegment(nil, request)
	segment.Procedure = segmentProcedure(request)

	ctx := request.Context()
	tags := tracedTags(request)
	start := time.Now()

	outgoing := request
	if t.ClientTrace {
		outgoing = withClientTrace(request, tags, start)
	}

	response, err := t.Transport.RoundTrip(outgoing)
	if err != nil {
		segment.AddAttribute("error", err.Error())
	} else if t.ClientTrace {
		response.Body = &errorReadCloser{
			R: response.Body,
			OnErr: func(err error) {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				recordResponse(ctx, tags, start, _httpResponseFullyReadMetric, response, err)
			},
		}
	}
	segment.Response = response
	segment.End()

	recordResponse(ctx, tags, start, _httpRequestMetric, response, err)

	return response, err
}

func tracedTags(req *http.Request) []string {
	tags := []string{"method:" + strings.ToLower(req.Method)}

	if targetID := tracing.TargetID(req.Context()); targetID != "" {
		tags = append(tags, "target_id:"+telemetry.SanitizeMetricTagValue(targetID))
	}

	return tags
}

func segmentProcedure(request *http.Request) string {
	ctx := request.Context()

	if template := tracing.EndpointTemplate(ctx); template != "" {
		return request.Method + " " + template
	}

	if targetID := tracing.TargetID(ctx); targetID != "" {
		return request.Method + " " + targetID
	}

	return request.Method
}

func recordResponse(ctx context.Context, tags []string, start time.Time, metric string, response *http.Response, err error) {
	status, statusClass := "error", "error"
	if err == nil {
		status = strconv.Itoa(response.StatusCode)
		statusClass = strconv.Itoa(response.StatusCode/100) + "xx"
	} else if os.IsTimeout(err) {
		status = "timeout"
	}

	recordTimeSince(ctx, metric, start, withTag(tags, "status:"+status, "status_class:"+statusClass))
}

func withClientTrace(request *http.Request, tags []string, start time.Time) *http.Request {
	ctx := request.Context()

	var dnsStart, connectStart, tlsStart time.Time

	// Without a pooled connection the callbacks run in this order:
	// DNS, Connect, TLSHandshake, GotConn, WroteRequest, GotFirstResponseByte.
	trace := &httptrace.ClientTrace{
		DNSStart:          func(httptrace.DNSStartInfo) { dnsStart = time.Now() },
		ConnectStart:      func(string, string) { connectStart = time.Now() },
		TLSHandshakeStart: func() { tlsStart = time.Now() },

		DNSDone: func(info httptrace.DNSDoneInfo) {
			recordTimeSince(ctx, _httpDNSTimingMetric, dnsStart, withTag(tags, statusTag(info.Err)))
		},
		ConnectDone: func(_, _ string, err error) {
			recordTimeSince(ctx, _httpTCPConnectTimingMetric, connectStart, withTag(tags, statusTag(err)))
		},
		TLSHandshakeDone: func(_ tls.ConnectionState, err error) {
			recordTimeSince(ctx, _httpTLSHandshakeTimingMetric, tlsStart, withTag(tags, statusTag(err)))
		},
		GotConn: func(info httptrace.GotConnInfo) {
			recordTimeSince(ctx, _httpGotConnectionTimingMetric, start, withTag(tags,
				"reused:"+strconv.FormatBool(info.Reused),
				"was_idle:"+strconv.FormatBool(info.WasIdle),
			))
		},
		WroteRequest: func(info httptrace.WroteRequestInfo) {
			recordTimeSince(ctx, _httpWroteRequestTimingMetric, start, withTag(tags, statusTag(info.Err)))
		},
		GotFirstResponseByte: func() {
			recordTimeSince(ctx, _httpGotFirstResponseByteTimingMetric, start, tags)
		},
	}

	return request.WithContext(httptrace.WithClientTrace(ctx, trace))
}

// withTag appends to a copy of tags, the callbacks above may run
// concurrently.
func withTag(tags []string, extra ...string) []string {
	return append(tags[:len(tags):len(tags)], extra...)
}

func statusTag(err error) string {
	switch {
	case err == nil:
		return "status:ok"
	case os.IsTimeout(err):
		return "status:timeout"
	default:
		return "status:error"
	}
}

func recordTimeSince(ctx context.Context, metric string, start time.Time, tags []string) {
	if start.IsZero() {
		return
	}

	telemetry.Timing(ctx, metric, time.Since(start), tags)
}

// errorReadCloser calls OnErr with any error returned by Read, io.EOF
// included.
type errorReadCloser struct {
	R     io.ReadCloser
	OnErr func(error)
}

func (r *errorReadCloser) Read(p []byte) (n int, err error) {
	n, err = r.R.Read(p)
	if err != nil {
		r.OnErr(err)
	}
	return n, err
}

func (r *errorReadCloser) Close() error {
	return r.R.Close()
}
