package users

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luizaranda/go-users/pkg/rusty"
)

func TestNormalize(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPut, "http://localhost:8080/api/users/3", nil)

	tests := []struct {
		name        string
		err         error
		wantKind    ErrorKind
		wantMessage string
		wantStatus  int
	}{
		{
			name:        "response with message",
			err:         &rusty.Error{Response: &rusty.Response{StatusCode: 422, Body: []byte(`{"message":"name is required"}`), Request: req}},
			wantKind:    ResponseError,
			wantMessage: "name is required",
			wantStatus:  422,
		},
		{
			name:        "response without json",
			err:         &rusty.Error{Response: &rusty.Response{StatusCode: 502, Body: []byte("bad gateway"), Request: req}},
			wantKind:    ResponseError,
			wantMessage: "502 bad_gateway: bad gateway",
			wantStatus:  502,
		},
		{
			name:        "request error",
			err:         &rusty.RequestError{Method: http.MethodGet, URL: "http://localhost:8080/api/users", Err: errors.New("dial tcp: connection refused")},
			wantKind:    RequestError,
			wantMessage: "dial tcp: connection refused",
		},
		{
			name:        "request error without cause",
			err:         &rusty.RequestError{Method: http.MethodGet, URL: "http://localhost:8080/api/users"},
			wantKind:    RequestError,
			wantMessage: FallbackMessage,
		},
		{
			name:        "decode error",
			err:         &decodeFailure{Response: &rusty.Response{StatusCode: 200, Body: []byte("[1"), Request: req}, Err: errors.New("unexpected end of JSON input")},
			wantKind:    DecodeError,
			wantMessage: "unexpected end of JSON input",
			wantStatus:  200,
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantKind:    RequestError,
			wantMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := normalize(tt.err)

			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantMessage, e.Message)
			assert.Equal(t, tt.wantStatus, e.StatusCode)
			assert.ErrorIs(t, e, tt.err)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	e := normalize(errors.New("boom"))
	assert.Same(t, e, normalize(e))
}
