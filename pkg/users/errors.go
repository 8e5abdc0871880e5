package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/luizaranda/go-users/pkg/rusty"
)

// FallbackMessage is the Message of errors for which neither the server
// payload nor the underlying error provide one.
const FallbackMessage = "unknown error occurred"

// ErrorKind tells at which stage a call failed.
type ErrorKind string

const (
	// RequestError is a call that received no response: the request could
	// not be built or sent, or the response could not be read.
	RequestError ErrorKind = "request"

	// ResponseError is a call answered with a non 2xx status.
	ResponseError ErrorKind = "response"

	// DecodeError is a 2xx response whose body is not valid JSON.
	DecodeError ErrorKind = "decode"
)

// Error is the error returned by every Client method. Message is never
// empty.
type Error struct {
	Kind ErrorKind

	// Method and URL of the failed request. URL may be a template when the
	// request could not be built.
	Method string
	URL    string

	// Response facts, zero for RequestError.
	StatusCode int
	Header     http.Header
	Body       []byte

	// Payload is Body decoded as a JSON object, nil when it is not one.
	Payload map[string]any

	// Message is the human readable reason of the failure.
	Message string

	// Cause is the original error, reachable through errors.Is and
	// errors.As.
	Cause error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// IsNotFound reports whether err is an *Error for a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the response status of err, or 0 when err is not an
// *Error carrying a response.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// decodeFailure is a 2xx response whose body could not be decoded.
type decodeFailure struct {
	Response *rusty.Response
	Err      error
}

func (e *decodeFailure) Error() string { return e.Err.Error() }

func (e *decodeFailure) Unwrap() error { return e.Err }

// normalize turns any error returned while calling the API into an *Error.
//
// Message resolution, first non empty wins: the "message" string of the JSON
// object in the response body, the message of the underlying error,
// FallbackMessage.
func normalize(err error) *Error {
	var ne *Error
	if errors.As(err, &ne) {
		return ne
	}

	e := &Error{Kind: RequestError, Cause: err}
	causeMessage := err.Error()

	var (
		respErr   *rusty.Error
		decodeErr *decodeFailure
		reqErr    *rusty.RequestError
	)
	switch {
	case errors.As(err, &respErr):
		e.Kind = ResponseError
		e.fillResponse(respErr.Response)

	case errors.As(err, &decodeErr):
		e.Kind = DecodeError
		e.fillResponse(decodeErr.Response)
		causeMessage = decodeErr.Err.Error()

	case errors.As(err, &reqErr):
		e.Method = reqErr.Method
		e.URL = reqErr.URL
		causeMessage = ""
		if reqErr.Err != nil {
			causeMessage = reqErr.Err.Error()
		}
	}

	e.Payload = decodePayload(e.Body)
	e.Message = resolveMessage(e.Payload, causeMessage)

	return e
}

func (e *Error) fillResponse(r *rusty.Response) {
	if r == nil {
		return
	}

	e.StatusCode = r.StatusCode
	e.Header = r.Header
	e.Body = r.Body
	if r.Request != nil {
		e.Method = r.Request.Method
		e.URL = r.Request.URL.String()
	}
}

func decodePayload(body []byte) map[string]any {
	if len(body) == 0 {
		return nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	return payload
}

func resolveMessage(payload map[string]any, causeMessage string) string {
	if msg, ok := payload["message"].(string); ok && msg != "" {
		return msg
	}

	if causeMessage != "" {
		return causeMessage
	}

	return FallbackMessage
}
