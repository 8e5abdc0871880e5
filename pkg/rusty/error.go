package rusty

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is a response rejected by the endpoint error policy. DefaultErrorPolicy
// returns it for any status >= 400.
type Error struct {
	// Response is the server response that caused this error. It is always
	// non-nil.
	*Response
}

// Error returns "<status> <status_text>" followed by the body, if any.
func (e *Error) Error() string {
	code := strings.ReplaceAll(strings.ToLower(http.StatusText(e.StatusCode)), " ", "_")
	if len(e.Body) == 0 {
		return fmt.Sprintf("%d %s", e.StatusCode, code)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, code, string(e.Body))
}

// RequestError reports a request that got no response: the requester failed
// or the response body could not be read.
type RequestError struct {
	Method string
	URL    string

	// Err is the error returned by the Requester, usually a *url.Error.
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("rusty: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
