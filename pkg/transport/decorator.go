package transport

import (
	"net/http"
)

// RoundTripDecorator wraps an http.RoundTripper adding behavior around it.
type RoundTripDecorator func(http.RoundTripper) http.RoundTripper

// RoundTripChain is an ordered collection of RoundTripDecorator. The first
// decorator is the outermost one, so it sees the request first.
type RoundTripChain []RoundTripDecorator

// Apply wraps base with every decorator of the chain.
func (c RoundTripChain) Apply(base http.RoundTripper) http.RoundTripper {
	for x := len(c) - 1; x >= 0; x-- {
		base = c[x](base)
	}
	return base
}

// RoundTripFunc adapts a function into an http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(req).
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
