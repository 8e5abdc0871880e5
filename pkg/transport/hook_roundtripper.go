package transport

import (
	"net/http"
)

// HookDecorator returns a RoundTripDecorator running req hooks before and res
// hooks after every round trip.
//
// For more information check HookRoundTripper struct.
func HookDecorator(req []RequestHook, res []ResponseHook) RoundTripDecorator {
	return func(base http.RoundTripper) http.RoundTripper {
		return &HookRoundTripper{
			Transport:    base,
			RequestHook:  req,
			ResponseHook: res,
		}
	}
}

// RequestHook runs before each request.
//
// Only the request headers are safe to mutate. A non nil error aborts the
// request and is returned to the caller as is.
type RequestHook func(*http.Request) error

// ResponseHook runs after each round trip with its outcome. Reading or
// closing the response body from a hook affects the caller.
type ResponseHook func(*http.Request, *http.Response, error)

// HookRoundTripper is an http.RoundTripper calling user supplied functions
// around the underlying transport.
type HookRoundTripper struct {
	Transport http.RoundTripper

	// RequestHook functions are called in order before the request is sent.
	RequestHook []RequestHook

	// ResponseHook functions are called in order once the round trip ends,
	// failed or not.
	ResponseHook []ResponseHook
}

// RoundTrip runs the request hooks, the underlying round trip and then the
// response hooks.
func (t *HookRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for _, hook := range t.RequestHook {
		if err := hook(req); err != nil {
			return nil, err
		}
	}

	res, err := t.Transport.RoundTrip(req)

	for _, hook := range t.ResponseHook {
		hook(req, res, err)
	}

	return res, err
}
