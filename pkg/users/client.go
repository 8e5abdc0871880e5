// Package users is a client for the user management API served under
// /api/users.
//
// Every method issues exactly one request and returns the decoded JSON
// response body unaltered, whatever its shape: []any for arrays,
// map[string]any for objects, nil for an empty body. Failures of any kind are returned as *Error, whose Message
// is always set.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/luizaranda/go-users/pkg/log"
	"github.com/luizaranda/go-users/pkg/rusty"
	"github.com/luizaranda/go-users/pkg/telemetry"
	"github.com/luizaranda/go-users/pkg/transport/httpclient"
)

const (
	_callMetric  = "users.client.call.time"
	_errorMetric = "users.client.error"
)

// Client calls the users API. It is safe for concurrent use.
type Client struct {
	config     Config
	collection *rusty.Endpoint
	item       *rusty.Endpoint
}

type clientOptions struct {
	config     Config
	requester  rusty.Requester
	httpClient []httpclient.Option
}

// Option configures a Client built by NewClient.
type Option func(*clientOptions)

// WithBaseURL sets the address request paths are appended to.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.config.BaseURL = baseURL
	}
}

// WithDefaultHeader sets a header sent with every request, replacing
// previous values of the same name.
//
// Bodies are only encoded as JSON, so overriding Content-Type breaks
// CreateUser and UpdateUser.
func WithDefaultHeader(name, value string) Option {
	return func(o *clientOptions) {
		o.config.DefaultHeaders.Set(name, value)
	}
}

// WithConfig replaces the whole configuration, DefaultConfig included.
func WithConfig(c Config) Option {
	return func(o *clientOptions) {
		o.config = c.clone()
		if o.config.DefaultHeaders == nil {
			o.config.DefaultHeaders = make(map[string][]string)
		}
	}
}

// WithRequester sets what executes the requests. Defaults to a client built
// by httpclient.New.
func WithRequester(r rusty.Requester) Option {
	return func(o *clientOptions) {
		o.requester = r
	}
}

// WithHTTPClientOptions passes opts to httpclient.New when no Requester is
// given.
func WithHTTPClientOptions(opts ...httpclient.Option) Option {
	return func(o *clientOptions) {
		o.httpClient = append(o.httpClient, opts...)
	}
}

// NewClient returns a Client for the API at DefaultBaseURL, sending
// Content-Type: application/json, unless opts say otherwise.
func NewClient(opts ...Option) (*Client, error) {
	options := clientOptions{config: DefaultConfig()}
	for _, opt := range opts {
		opt(&options)
	}

	if err := options.config.Validate(); err != nil {
		return nil, err
	}

	requester := options.requester
	if requester == nil {
		requester = httpclient.New(options.httpClient...)
	}

	endpointOpts := []rusty.EndpointOption{rusty.WithErrorPolicy(successOnly)}
	for name, values := range options.config.DefaultHeaders {
		for _, v := range values {
			endpointOpts = append(endpointOpts, rusty.WithHeader(name, v))
		}
	}

	collection, err := rusty.NewEndpoint(requester, rusty.URL(options.config.BaseURL, _usersPath), endpointOpts...)
	if err != nil {
		return nil, fmt.Errorf("users: building %s endpoint: %w", _usersPath, err)
	}

	item, err := rusty.NewEndpoint(requester, rusty.URL(options.config.BaseURL, _userPath), append(endpointOpts, rusty.WithEmptyParams())...)
	if err != nil {
		return nil, fmt.Errorf("users: building %s endpoint: %w", _userPath, err)
	}

	return &Client{
		config:     options.config,
		collection: collection,
		item:       item,
	}, nil
}

// successOnly rejects every response outside 2xx, redirects included.
func successOnly(r *rusty.Response) error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	return &rusty.Error{Response: r}
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config.clone()
}

// GetAllUsers lists every user: GET /api/users.
func (c *Client) GetAllUsers(ctx context.Context) (any, error) {
	return c.call(ctx, "GetAllUsers", func(ctx context.Context) (*rusty.Response, error) {
		return c.collection.Get(ctx)
	})
}

// GetUserByID fetches one user: GET /api/users/{id}. id is substituted as
// is, path escaped; an empty id requests /api/users/.
func (c *Client) GetUserByID(ctx context.Context, id string) (any, error) {
	return c.call(ctx, "GetUserByID", func(ctx context.Context) (*rusty.Response, error) {
		return c.item.Get(ctx, rusty.WithParam("id", id))
	})
}

// CreateUser creates a user from userData, sent as the JSON body of
// POST /api/users, and returns the created record.
func (c *Client) CreateUser(ctx context.Context, userData any) (any, error) {
	return c.call(ctx, "CreateUser", func(ctx context.Context) (*rusty.Response, error) {
		return c.collection.Post(ctx, rusty.WithBody(userData))
	})
}

// UpdateUser replaces a user with userData, sent as the JSON body of
// PUT /api/users/{id}, and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, id string, userData any) (any, error) {
	return c.call(ctx, "UpdateUser", func(ctx context.Context) (*rusty.Response, error) {
		return c.item.Put(ctx, rusty.WithParam("id", id), rusty.WithBody(userData))
	})
}

// DeleteUser deletes a user: DELETE /api/users/{id}. It returns whatever
// the server answered, nil for an empty body.
func (c *Client) DeleteUser(ctx context.Context, id string) (any, error) {
	return c.call(ctx, "DeleteUser", func(ctx context.Context) (*rusty.Response, error) {
		return c.item.Delete(ctx, rusty.WithParam("id", id))
	})
}

// call runs do and returns the decoded response body. Any failure is
// normalized into an *Error and the body is then nil.
func (c *Client) call(ctx context.Context, operation string, do func(context.Context) (*rusty.Response, error)) (any, error) {
	ctx, span := telemetry.StartSpan(ctx, "users."+operation)
	defer span.Finish()

	start := time.Now()
	body, err := c.do(ctx, do)
	telemetry.Timing(ctx, _callMetric, time.Since(start), telemetry.Tags("operation", operation, "success", err == nil))
	if err == nil {
		return body, nil
	}

	normalized := normalize(err)

	span.NoticeError(normalized)
	telemetry.Incr(ctx, _errorMetric, telemetry.Tags(
		"operation", operation,
		"kind", string(normalized.Kind),
		"status", normalized.StatusCode,
	))
	log.Debug(ctx, "users api call failed",
		log.String("operation", operation),
		log.String("kind", string(normalized.Kind)),
		log.Int("status", normalized.StatusCode),
		log.String("message", normalized.Message),
	)

	return nil, normalized
}

func (c *Client) do(ctx context.Context, do func(context.Context) (*rusty.Response, error)) (any, error) {
	res, err := do(ctx)
	if err != nil {
		return nil, err
	}

	if len(res.Body) == 0 {
		return nil, nil
	}

	var body any
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return nil, &decodeFailure{Response: res, Err: fmt.Errorf("decoding response body: %w", err)}
	}

	return body, nil
}
