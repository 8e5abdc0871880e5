package transport

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

var (
	// DefaultDialTimeout is the max time the dialer waits for the TCP
	// handshake before failing with a timeout.
	DefaultDialTimeout = 2 * time.Second

	// DefaultKeepAliveProbeInterval is the interval between keep-alive probes
	// of open connections.
	DefaultKeepAliveProbeInterval = 15 * time.Second
)

// An Option configures the http.Transport built by NewTransport or
// NewPooled.
type Option interface {
	applyTransport(*http.Transport)
	applyDialer(*net.Dialer)
}

type transportOptFunc func(*http.Transport)

func (f transportOptFunc) applyTransport(t *http.Transport) { f(t) }
func (f transportOptFunc) applyDialer(*net.Dialer)          {}

type dialerOptFunc func(*net.Dialer)

func (f dialerOptFunc) applyTransport(*http.Transport) {}
func (f dialerOptFunc) applyDialer(d *net.Dialer)      { f(d) }

// OptionDialTimeout sets the timeout of the transport net.Dialer.
func OptionDialTimeout(timeout time.Duration) Option {
	return dialerOptFunc(func(d *net.Dialer) {
		d.Timeout = timeout
	})
}

// OptionResponseHeaderTimeout sets the ResponseHeaderTimeout of the transport.
func OptionResponseHeaderTimeout(timeout time.Duration) Option {
	return transportOptFunc(func(t *http.Transport) {
		t.ResponseHeaderTimeout = timeout
	})
}

// OptionIdleConnTimeout sets the IdleConnTimeout of the transport.
func OptionIdleConnTimeout(timeout time.Duration) Option {
	return transportOptFunc(func(t *http.Transport) {
		t.IdleConnTimeout = timeout
	})
}

// OptionMaxIdleConnsPerHost sets the MaxIdleConnsPerHost of the transport.
func OptionMaxIdleConnsPerHost(n int) Option {
	return transportOptFunc(func(t *http.Transport) {
		t.MaxIdleConnsPerHost = n
	})
}

// OptionTLSClientConfig sets the TLSClientConfig of the transport.
func OptionTLSClientConfig(config *tls.Config) Option {
	return transportOptFunc(func(t *http.Transport) {
		t.TLSClientConfig = config
	})
}

// NewTransport returns an *http.Transport tuned for talking to a single API
// host: a bounded dial timeout, keep-alive probes and a large idle pool.
func NewTransport(opts ...Option) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   DefaultDialTimeout,
		KeepAlive: DefaultKeepAliveProbeInterval,
	}

	transport := &http.Transport{
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   100,
		Proxy:                 http.ProxyFromEnvironment,
		ExpectContinueTimeout: 1 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
	}

	for _, opt := range opts {
		opt.applyDialer(dialer)
		opt.applyTransport(transport)
	}

	transport.DialContext = dialer.DialContext

	return transport
}
