package httpclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/luizaranda/go-users/pkg/log"
	"github.com/luizaranda/go-users/pkg/transport"
)

var _defaultTransport = transport.NewPooled("users-default")

// DefaultTransport returns the transport used by New when WithTransport is
// not given.
func DefaultTransport() *transport.PooledTransport {
	return _defaultTransport
}

// Requester exposes http.Client Do, the minimum needed to execute requests.
type Requester interface {
	Do(*http.Request) (*http.Response, error)
}

// CheckRedirectFunc has the signature of http.Client CheckRedirect.
type CheckRedirectFunc func(req *http.Request, via []*http.Request) error

// NoRedirect makes the client return redirect responses as they are.
func NoRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// maxRedirects matches the limit of http.Client default policy.
const maxRedirects = 10

func followRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("stopped after 10 redirects")
	}
	return nil
}

type clientOptions struct {
	Timeout           time.Duration
	CheckRedirect     CheckRedirectFunc
	Transport         http.RoundTripper
	ReqHooks          []transport.RequestHook
	ResHooks          []transport.ResponseHook
	Logger            log.Logger
	EnableClientTrace bool
}

// Option configures a client built by New.
type Option func(opts *clientOptions)

// WithTransport sets the base round tripper requests go through once every
// decorator ran. A *transport.PooledTransport keeps connection stats;
// tests may pass any http.RoundTripper.
func WithTransport(t http.RoundTripper) Option {
	return func(options *clientOptions) {
		options.Transport = t
	}
}

// DisableTimeout disables the per request timeout. The dial timeout of the
// underlying transport still applies to new connections.
func DisableTimeout() Option { return WithTimeout(0) }

// WithTimeout sets the timeout of each request, headers and body included.
// Zero disables it, negative values are ignored.
func WithTimeout(t time.Duration) Option {
	return func(options *clientOptions) {
		if t >= 0 {
			options.Timeout = t
		}
	}
}

// FollowRedirects controls whether redirects are followed, up to 10 of them.
// The default is to return the redirect response.
func FollowRedirects(follow bool) Option {
	return func(options *clientOptions) {
		if follow {
			options.CheckRedirect = followRedirects
		} else {
			options.CheckRedirect = NoRedirect
		}
	}
}

// WithRequestHook appends hooks run before each request.
func WithRequestHook(hooks ...transport.RequestHook) Option {
	return func(options *clientOptions) {
		options.ReqHooks = append(options.ReqHooks, hooks...)
	}
}

// WithResponseHook appends hooks run after each round trip.
func WithResponseHook(hooks ...transport.ResponseHook) Option {
	return func(options *clientOptions) {
		options.ResHooks = append(options.ResHooks, hooks...)
	}
}

// WithLogger sets the logger used for requests whose context carries none.
func WithLogger(l log.Logger) Option {
	return func(options *clientOptions) {
		options.Logger = l
	}
}

// WithEnableClientTrace enables connection level timing metrics (DNS, TCP
// connect, TLS handshake, first byte).
func WithEnableClientTrace() Option {
	return func(options *clientOptions) {
		options.EnableClientTrace = true
	}
}

var (
	// DefaultTimeout is the request timeout of clients built by New. Zero,
	// requests only end when their context does.
	DefaultTimeout time.Duration

	// DefaultCheckRedirect is the redirect policy of clients built by New.
	DefaultCheckRedirect = CheckRedirectFunc(NoRedirect)
)

// New builds an *http.Client recording telemetry on all executed requests.
func New(opts ...Option) *http.Client {
	config := clientOptions{
		Timeout:       DefaultTimeout,
		CheckRedirect: DefaultCheckRedirect,
		ReqHooks:      []transport.RequestHook{transport.RequestIDHook},
		Transport:     DefaultTransport(),
	}

	for _, opt := range opts {
		opt(&config)
	}

	return &http.Client{
		Timeout:       config.Timeout,
		CheckRedirect: config.CheckRedirect,
		Transport:     roundTripper(&config),
	}
}

func roundTripper(config *clientOptions) http.RoundTripper {
	chain := transport.RoundTripChain{
		transport.UserAgentDecorator(),
		transport.HookDecorator(config.ReqHooks, config.ResHooks),
		transport.LogDecorator(config.Logger),
		transport.TraceDecorator(config.EnableClientTrace),
		// Innermost so the New Relic headers are already set on the request
		// the span is created for.
		transport.OpenTelemetryDecorator(),
	}

	return chain.Apply(config.Transport)
}
