package rusty

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type commonOptions struct {
	Header   http.Header
	TargetID string
}

type requestOptions struct {
	commonOptions
	Params      map[string]string
	Query       url.Values
	RequestBody any
}

type endpointOptions struct {
	commonOptions
	ErrorPolicyFn    ErrorPolicyFunc
	AllowEmptyParams bool
}

// Option is accepted both by NewEndpoint and by request methods.
type Option interface {
	EndpointOption
	RequestOption
}

// EndpointOption configures an Endpoint at creation.
type EndpointOption interface {
	applyEndpoint(op *endpointOptions)
}

// RequestOption configures a single request.
type RequestOption interface {
	applyRequest(opt *requestOptions)
}

type allOptionFunc func(opt *commonOptions)

func (f allOptionFunc) applyRequest(o *requestOptions)   { f(&o.commonOptions) }
func (f allOptionFunc) applyEndpoint(o *endpointOptions) { f(&o.commonOptions) }

type endpointOptionFunc func(opt *endpointOptions)

func (f endpointOptionFunc) applyEndpoint(o *endpointOptions) { f(o) }

type requestOptionFunc func(opt *requestOptions)

func (f requestOptionFunc) applyRequest(o *requestOptions) { f(o) }

// WithParam sets the value of the {name} placeholder of the endpoint URL.
// Values may be strings, integers, bools, time.Time or fmt.Stringer; any other
// type panics.
func WithParam(name string, value any) RequestOption {
	return requestOptionFunc(func(options *requestOptions) {
		options.Params[name] = toString(value)
	})
}

// WithHeader adds a header value. Request headers replace endpoint headers
// of the same name.
func WithHeader(name string, value any) Option {
	return allOptionFunc(func(options *commonOptions) {
		options.Header.Add(name, toString(value))
	})
}

// WithBody sets the request body. []byte and io.Reader are sent as they are;
// any other value is encoded according to the Content-Type header, of which
// only application/json is supported. Other content types make requests fail
// with ErrUnsupportedBodyType.
func WithBody(body any) RequestOption {
	return requestOptionFunc(func(options *requestOptions) {
		options.RequestBody = body
	})
}

// WithErrorPolicy replaces DefaultErrorPolicy for the endpoint.
func WithErrorPolicy(fn ErrorPolicyFunc) EndpointOption {
	return endpointOptionFunc(func(options *endpointOptions) {
		options.ErrorPolicyFn = fn
	})
}

// WithEmptyParams lets path placeholders expand to an empty value, so
// /api/users/{id} with an empty id requests /api/users/. Without it such
// requests fail with ErrEmptyURLParam.
func WithEmptyParams() EndpointOption {
	return endpointOptionFunc(func(options *endpointOptions) {
		options.AllowEmptyParams = true
	})
}

// WithTargetID sets the telemetry target id of requests. It should have the
// lowest cardinality possible, /api/users/{id} rather than /api/users/42.
// Defaults to the endpoint URL path.
func WithTargetID(targetID string) Option {
	return allOptionFunc(func(options *commonOptions) {
		options.TargetID = targetID
	})
}

// WithQuery appends v to the query string of the endpoint URL.
func WithQuery(v url.Values) RequestOption {
	return requestOptionFunc(func(options *requestOptions) {
		options.Query = v
	})
}

func toString(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", value)
	default:
		panic(fmt.Sprintf("type %T is unsupported", value))
	}
}

func defaultEndpointOptions() endpointOptions {
	return endpointOptions{
		commonOptions: commonOptions{Header: make(http.Header)},
		ErrorPolicyFn: DefaultErrorPolicy,
	}
}

func defaultRequestOptions() requestOptions {
	return requestOptions{
		commonOptions: commonOptions{Header: make(http.Header)},
		Params:        make(map[string]string),
	}
}
