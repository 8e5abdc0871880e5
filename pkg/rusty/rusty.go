// Package rusty calls REST endpoints described by URL templates such as
// http://localhost:8080/api/users/{id}.
//
// An Endpoint is created once and shared. Each call expands the template,
// encodes the body, executes the request inside an OpenTelemetry span and
// reads the whole response before applying the endpoint error policy.
package rusty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/luizaranda/go-users/pkg/telemetry/tracing"
	"github.com/luizaranda/go-users/pkg/transport/httpclient"
)

var (
	// ErrUnsupportedBodyType is returned when a body cannot be encoded for the
	// request Content-Type.
	ErrUnsupportedBodyType = errors.New("rusty: unsupported body type")

	// ErrEmptyURLParam is returned when a path placeholder is given an empty
	// value.
	ErrEmptyURLParam = errors.New("rusty: empty param value")

	// ErrMissingURLParam is returned when a placeholder has no value.
	ErrMissingURLParam = errors.New("rusty: missing param value")
)

// Requester executes HTTP requests. *http.Client, usually one built by
// httpclient.New, satisfies it.
type Requester interface {
	Do(*http.Request) (*http.Response, error)
}

// Response is a fully read server response.
type Response struct {
	Body       []byte
	StatusCode int
	Header     http.Header

	// Request is the request that was sent. Its body has been consumed.
	Request *http.Request
}

// ErrorPolicyFunc decides whether a response is an error. It is not called
// when no response was received.
type ErrorPolicyFunc func(*Response) error

// DefaultErrorPolicy returns an *Error for any status code >= 400.
var DefaultErrorPolicy ErrorPolicyFunc = func(r *Response) error {
	if r.StatusCode < 400 {
		return nil
	}

	return &Error{r}
}

// Endpoint is an API endpoint at a templated URL. It is safe for concurrent
// use.
type Endpoint struct {
	requester      Requester
	formatURL      *url.URL
	defaultHeaders http.Header
	errorPolicy    ErrorPolicyFunc
	targetID       string
	allowEmpty     bool
}

// NewEndpoint creates an Endpoint for endpointURL, which must be an absolute
// URL as accepted by url.ParseRequestURI.
func NewEndpoint(requester Requester, endpointURL string, opts ...EndpointOption) (*Endpoint, error) {
	options := defaultEndpointOptions()
	for _, option := range opts {
		option.applyEndpoint(&options)
	}

	u, err := url.ParseRequestURI(endpointURL)
	if err != nil {
		return nil, err
	}

	targetID := options.TargetID
	if targetID == "" {
		targetID = u.Path
	}

	return &Endpoint{
		requester:      requester,
		formatURL:      u,
		defaultHeaders: options.Header,
		errorPolicy:    options.ErrorPolicyFn,
		targetID:       targetID,
		allowEmpty:     options.AllowEmptyParams,
	}, nil
}

// Get issues a GET request to the endpoint.
func (e *Endpoint) Get(ctx context.Context, opts ...RequestOption) (*Response, error) {
	return e.doRequest(ctx, http.MethodGet, opts...)
}

// Post issues a POST request to the endpoint.
func (e *Endpoint) Post(ctx context.Context, opts ...RequestOption) (*Response, error) {
	return e.doRequest(ctx, http.MethodPost, opts...)
}

// Put issues a PUT request to the endpoint.
func (e *Endpoint) Put(ctx context.Context, opts ...RequestOption) (*Response, error) {
	return e.doRequest(ctx, http.MethodPut, opts...)
}

// Delete issues a DELETE request to the endpoint.
func (e *Endpoint) Delete(ctx context.Context, opts ...RequestOption) (*Response, error) {
	return e.doRequest(ctx, http.MethodDelete, opts...)
}

// Patch issues a PATCH request to the endpoint.
func (e *Endpoint) Patch(ctx context.Context, opts ...RequestOption) (*Response, error) {
	return e.doRequest(ctx, http.MethodPatch, opts...)
}

func (e *Endpoint) doRequest(ctx context.Context, method string, opts ...RequestOption) (*Response, error) {
	options := defaultRequestOptions()
	for _, option := range opts {
		option.applyRequest(&options)
	}

	targetID := e.targetID
	if options.TargetID != "" {
		targetID = options.TargetID
	}
	ctx = tracing.WithTargetID(ctx, targetID)
	ctx = tracing.WithEndpointTemplate(ctx, e.formatURL.Path)

	targetURL, err := expandURLTemplate(e.formatURL, options.Params, options.Query, e.allowEmpty)
	if err != nil {
		return nil, &RequestError{Method: method, URL: e.formatURL.String(), Err: err}
	}

	requestHeaders := make(http.Header, len(e.defaultHeaders)+len(options.Header))
	copyHeader(requestHeaders, e.defaultHeaders)
	copyHeader(requestHeaders, options.Header)

	body, err := encodeBody(options.RequestBody, requestHeaders)
	if err != nil {
		return nil, &RequestError{Method: method, URL: targetURL.String(), Err: err}
	}

	request, err := httpclient.NewRequest(ctx, method, targetURL.String(), body)
	if err != nil {
		return nil, &RequestError{Method: method, URL: targetURL.String(), Err: err}
	}

	request.Header = requestHeaders

	ctx, span := newSpan(request)
	defer span.End()

	request = request.WithContext(ctx)
	response, err := e.requester.Do(request)
	recordResponseAttributes(span, response, err)
	if err != nil {
		return nil, &RequestError{Method: method, URL: targetURL.String(), Err: err}
	}
	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &RequestError{Method: method, URL: targetURL.String(), Err: fmt.Errorf("reading response body: %w", err)}
	}

	r := Response{
		Body:       b,
		StatusCode: response.StatusCode,
		Header:     response.Header,
		Request:    request,
	}

	return &r, e.errorPolicy(&r)
}

func encodeBody(body any, headers http.Header) (any, error) {
	switch t := body.(type) {
	case io.Reader, nil, []byte:
		return t, nil
	}

	ct, _, err := mime.ParseMediaType(headers.Get("Content-Type"))
	if err != nil || ct != "application/json" {
		return nil, ErrUnsupportedBodyType
	}

	content, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding json body: %w", err)
	}

	return content, nil
}

// copyHeader copies every value of src into dst, replacing existing keys.
func copyHeader(dst, src http.Header) {
	for k, vv := range src {
		dst[k] = append([]string(nil), vv...)
	}
}
