package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizaranda/go-users/pkg/users/userstest"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)

	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCLI_CRUD(t *testing.T) {
	srv := userstest.NewServer()
	defer srv.Close()
	srv.Seed("1", map[string]any{"name": "Ann"})

	res := runCLI(t, "", "--base-url", srv.URL, "get", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"id":"1","name":"Ann"}`, res.stdout)

	res = runCLI(t, "", "--base-url", srv.URL, "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `[{"id":"1","name":"Ann"}]`, res.stdout)

	res = runCLI(t, `{"name":"Bob"}`, "--base-url", srv.URL, "create", "-")
	require.Equal(t, 0, res.code, res.stderr)

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	assert.Equal(t, "Bob", created["name"])
	require.NotEmpty(t, created["id"])

	res = runCLI(t, "", "--base-url", srv.URL, "update", "1", `{"name":"Anne"}`)
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"id":"1","name":"Anne"}`, res.stdout)

	res = runCLI(t, "", "--base-url", srv.URL, "delete", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	requests := srv.Requests()
	require.Len(t, requests, 5)
	assert.Equal(t, http.MethodPost, requests[2].Method)
	assert.JSONEq(t, `{"name":"Bob"}`, string(requests[2].Body))
	assert.Equal(t, http.MethodDelete, requests[4].Method)
	assert.Equal(t, "/api/users/1", requests[4].Path)
}

func TestCLI_PrintsNormalizedMessage(t *testing.T) {
	srv := userstest.NewServer()
	defer srv.Close()

	res := runCLI(t, "", "--base-url", srv.URL, "get", "404")

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "user 404 not found\n")
}

func TestCLI_Header(t *testing.T) {
	srv := userstest.NewServer()
	defer srv.Close()

	res := runCLI(t, "", "--base-url", srv.URL, "-H", "X-Tenant=acme", "list")
	require.Equal(t, 0, res.code, res.stderr)

	requests := srv.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "acme", requests[0].Header.Get("X-Tenant"))
}

func TestCLI_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad header", args: []string{"-H", "nope", "list"}, want: `invalid header "nope"`},
		{name: "bad user data", args: []string{"create", "[1]"}, want: "user data must be a JSON object"},
		{name: "missing id", args: []string{"get"}, want: "accepts 1 arg(s), received 0"},
		{name: "bad base url", args: []string{"--base-url", "not a url", "list"}, want: "BaseURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.args...)

			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}
