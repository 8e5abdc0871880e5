package web

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Param returns the value of the route parameter key, or empty.
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// WithURLParams returns a copy of req whose route parameters are params.
// t is unused, it restricts the function to tests.
func WithURLParams(t *testing.T, req *http.Request, params map[string]string) *http.Request {
	if t == nil {
		panic("use WithURLParams only in tests")
	}

	chiCtx := chi.NewRouteContext()
	for key, val := range params {
		chiCtx.URLParams.Add(key, val)
	}

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// DecodeJSON decodes the request body into v. Malformed bodies are reported
// as a 400 *Error.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return BadRequestErrorf("invalid json body: %v", err)
	}
	return nil
}
