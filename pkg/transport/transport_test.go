package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizaranda/go-users/pkg/log"
	"github.com/luizaranda/go-users/pkg/telemetry"
	"github.com/luizaranda/go-users/pkg/telemetry/tracing"
	"github.com/luizaranda/go-users/pkg/transport"
)

func okTransport(seen *http.Request) transport.RoundTripFunc {
	return func(r *http.Request) (*http.Response, error) {
		*seen = *r
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("ok")),
			Header:     http.Header{},
			Request:    r,
		}, nil
	}
}

func TestRoundTripChain_Order(t *testing.T) {
	var calls []string
	decorator := func(name string) transport.RoundTripDecorator {
		return func(next http.RoundTripper) http.RoundTripper {
			return transport.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
				calls = append(calls, name)
				return next.RoundTrip(r)
			})
		}
	}

	var seen http.Request
	rt := transport.RoundTripChain{decorator("outer"), decorator("inner")}.Apply(okTransport(&seen))

	res, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://users.test/", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestHookRoundTripper(t *testing.T) {
	var seen http.Request
	var gotStatus int

	rt := transport.HookDecorator(
		[]transport.RequestHook{func(r *http.Request) error {
			r.Header.Set("X-Hook", "1")
			return nil
		}},
		[]transport.ResponseHook{func(_ *http.Request, res *http.Response, err error) {
			require.NoError(t, err)
			gotStatus = res.StatusCode
		}},
	)(okTransport(&seen))

	res, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://users.test/", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "1", seen.Header.Get("X-Hook"))
	assert.Equal(t, http.StatusOK, gotStatus)
}

func TestHookRoundTripper_RequestHookAborts(t *testing.T) {
	hookErr := errors.New("denied")
	called := false

	rt := transport.HookDecorator(
		[]transport.RequestHook{func(*http.Request) error { return hookErr }},
		nil,
	)(transport.RoundTripFunc(func(*http.Request) (*http.Response, error) {
		called = true
		return nil, nil
	}))

	_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://users.test/", nil))

	assert.ErrorIs(t, err, hookErr)
	assert.False(t, called)
}

func TestRequestIDHook(t *testing.T) {
	t.Run("generated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "http://users.test/", nil)
		require.NoError(t, transport.RequestIDHook(r))
		assert.Len(t, r.Header.Get(tracing.RequestIDHeader), 36)
	})

	t.Run("from context", func(t *testing.T) {
		ctx := tracing.WithRequestID(context.Background(), "req-1")
		r := httptest.NewRequest(http.MethodGet, "http://users.test/", nil).WithContext(ctx)
		require.NoError(t, transport.RequestIDHook(r))
		assert.Equal(t, "req-1", r.Header.Get(tracing.RequestIDHeader))
	})

	t.Run("kept", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "http://users.test/", nil)
		r.Header.Set(tracing.RequestIDHeader, "caller")
		require.NoError(t, transport.RequestIDHook(r))
		assert.Equal(t, "caller", r.Header.Get(tracing.RequestIDHeader))
	})
}

func TestUserAgentRoundTripper(t *testing.T) {
	var seen http.Request
	rt := transport.UserAgentDecorator()(okTransport(&seen))

	r := httptest.NewRequest(http.MethodGet, "http://users.test/", nil)
	res, err := rt.RoundTrip(r)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.True(t, strings.HasPrefix(seen.UserAgent(), "users-go/"), seen.UserAgent())

	r = httptest.NewRequest(http.MethodGet, "http://users.test/", nil)
	r.Header.Set("User-Agent", "custom")
	res, err = rt.RoundTrip(r)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "custom", seen.UserAgent())
}

type bufferSyncer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *bufferSyncer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *bufferSyncer) Sync() error { return nil }

func (b *bufferSyncer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLogRoundTripper(t *testing.T) {
	out := &bufferSyncer{}
	level := log.NewAtomicLevelAt(log.DebugLevel)
	logger := log.NewProductionLogger(&level, log.WithWriter(out))

	var seen http.Request
	rt := transport.LogDecorator(logger)(okTransport(&seen))

	res, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://users.test/api/users", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	failing := transport.LogDecorator(logger)(transport.RoundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}))
	_, err = failing.RoundTrip(httptest.NewRequest(http.MethodDelete, "http://users.test/api/users/1", nil))
	require.Error(t, err)

	logs := out.String()
	assert.Contains(t, logs, `"msg":"http request"`)
	assert.Contains(t, logs, `"url":"http://users.test/api/users"`)
	assert.Contains(t, logs, `"status":200`)
	assert.Contains(t, logs, `"msg":"http request failed"`)
	assert.Contains(t, logs, `"error":"connection refused"`)
}

type timing struct {
	name string
	tags []string
}

type recordingClient struct {
	telemetry.Client

	mu      sync.Mutex
	timings []timing
}

func (c *recordingClient) Timing(name string, _ time.Duration, tags []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timings = append(c.timings, timing{name: name, tags: tags})
}

func TestTracedRoundTripper_RecordsRequestTiming(t *testing.T) {
	rec := &recordingClient{Client: telemetry.NewNoOpClient()}
	ctx := telemetry.Context(context.Background(), rec)
	ctx = tracing.WithTargetID(ctx, "/api/users/{id}")

	var seen http.Request
	rt := transport.TraceDecorator(false)(okTransport(&seen))

	r := httptest.NewRequest(http.MethodGet, "http://users.test/api/users/1", nil).WithContext(ctx)
	res, err := rt.RoundTrip(r)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Len(t, rec.timings, 1)
	assert.Equal(t, "users.http.client.request.time", rec.timings[0].name)
	assert.Contains(t, rec.timings[0].tags, "method:get")
	assert.Contains(t, rec.timings[0].tags, "status:200")
	assert.Contains(t, rec.timings[0].tags, "status_class:2xx")
	assert.Len(t, rec.timings[0].tags, 4)
}

func TestTracedRoundTripper_Error(t *testing.T) {
	rec := &recordingClient{Client: telemetry.NewNoOpClient()}
	ctx := telemetry.Context(context.Background(), rec)

	rt := transport.TraceDecorator(false)(transport.RoundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("boom")
	}))

	r := httptest.NewRequest(http.MethodPost, "http://users.test/api/users", nil).WithContext(ctx)
	_, err := rt.RoundTrip(r)
	require.Error(t, err)

	require.Len(t, rec.timings, 1)
	assert.Equal(t, []string{"method:post", "status:error", "status_class:error"}, rec.timings[0].tags)
}

func TestPooledTransport_Stats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	pooled := transport.NewPooled("transport-test")
	defer pooled.CloseIdleConnections()

	client := &http.Client{Transport: pooled}
	res, err := client.Get(srv.URL)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, res.Body)
	res.Body.Close()

	key := "tcp:" + srv.Listener.Addr().String()
	assert.Equal(t, int64(1), pooled.Stats()[key])

	pooled.CloseIdleConnections()
	assert.Eventually(t, func() bool {
		return pooled.Stats()[key] == 0
	}, time.Second, 10*time.Millisecond)
}
