package web_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizaranda/go-users/pkg/web"
)

func TestWrap_EncodesErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "web error",
			err:      web.NotFoundErrorf("user %s not found", "7"),
			wantCode: http.StatusNotFound,
			wantBody: `{"code":"not_found","message":"user 7 not found"}`,
		},
		{
			name:     "other error",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"code":"internal_server_error","message":"boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := web.Wrap(func(http.ResponseWriter, *http.Request) error { return tt.err })

			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestWrap_MiddlewareOrder(t *testing.T) {
	var calls []string
	mw := func(name string) web.Middleware {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next(w, r)
			}
		}
	}

	h := web.Wrap(func(w http.ResponseWriter, _ *http.Request) error {
		calls = append(calls, "handler")
		return web.EncodeJSON(w, nil, http.StatusNoContent)
	}, mw("first"), mw("second"))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "handler"}, calls)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestPanics(t *testing.T) {
	h := web.Wrap(func(http.ResponseWriter, *http.Request) error {
		panic("kaboom")
	}, web.Panics())

	w := httptest.NewRecorder()
	require.NotPanics(t, func() { h(w, httptest.NewRequest(http.MethodGet, "/", nil)) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"internal_server_error","message":"kaboom"}`, w.Body.String())
}

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantCode    int
	}{
		{name: "json", contentType: "application/json", body: `{}`, wantCode: http.StatusOK},
		{name: "json with charset", contentType: "application/json; charset=utf-8", body: `{}`, wantCode: http.StatusOK},
		{name: "no body", contentType: "", body: "", wantCode: http.StatusOK},
		{name: "text", contentType: "text/plain", body: "hi", wantCode: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := web.Wrap(func(w http.ResponseWriter, _ *http.Request) error {
				return web.EncodeJSON(w, map[string]string{}, http.StatusOK)
			}, web.ContentTypeJSON())

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}

			w := httptest.NewRecorder()
			h(w, r)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestParam(t *testing.T) {
	r := web.WithURLParams(t, httptest.NewRequest(http.MethodGet, "/api/users/9", nil), map[string]string{"id": "9"})

	assert.Equal(t, "9", web.Param(r, "id"))
	assert.Empty(t, web.Param(r, "other"))
}

func TestDecodeJSON(t *testing.T) {
	var v map[string]any
	err := web.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &v)

	var webErr *web.Error
	require.ErrorAs(t, err, &webErr)
	assert.Equal(t, http.StatusBadRequest, webErr.StatusCode())
	assert.Equal(t, "bad_request", webErr.Code)
}
