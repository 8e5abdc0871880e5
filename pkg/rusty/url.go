package rusty

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	noneEscape int = iota
	queryEscape
	pathEscape
)

// URL joins elem to the path of base, returning an empty string when either
// cannot be parsed. elem may carry a query string after "?".
//
//	URL("http://localhost:8080", "/api/users/{id}")      // http://localhost:8080/api/users/{id}
//	URL("http://localhost:8080/v2/", "/api/users")       // http://localhost:8080/v2/api/users
//	URL("http://localhost:8080/api/users", "?q={query}") // http://localhost:8080/api/users?q={query}
func URL(base string, elem string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}

	path, params, found := strings.Cut(elem, "?")
	u2, err := url.Parse(path)
	if err != nil {
		return ""
	}

	if u2.Path != "" {
		u = u.JoinPath(u2.Path)
	}

	if found {
		u.RawQuery = params
	}

	unescapedURL, err := url.PathUnescape(u.String())
	if err != nil {
		return ""
	}

	return unescapedURL
}

func expandURLTemplate(u *url.URL, params map[string]string, query url.Values, allowEmpty bool) (*url.URL, error) {
	u2 := cloneURL(u)

	p, err := expand(u.Path, params, noneEscape, allowEmpty)
	if err != nil {
		return nil, err
	}

	rawPath, err := expand(u.Path, params, pathEscape, allowEmpty)
	if err != nil {
		return nil, err
	}

	rawQuery, err := expand(u.RawQuery, params, queryEscape, allowEmpty)
	if err != nil {
		return nil, err
	}

	if rawQuery != "" && len(query) > 0 {
		rawQuery += "&"
	}

	rawQuery += query.Encode()

	u2.Path = p
	u2.RawPath = rawPath
	u2.RawQuery = rawQuery
	return u2, nil
}

func expand(template string, params map[string]string, mode int, allowEmpty bool) (string, error) {
	return fasttemplate.ExecuteFuncStringWithErr(template, "{", "}", func(w io.Writer, tag string) (int, error) {
		return tagFunc(w, tag, params, mode, allowEmpty)
	})
}

func noopEscape(s string) string { return s }

func tagFunc(w io.Writer, tag string, m map[string]string, mode int, allowEmpty bool) (int, error) {
	escapeFunc := noopEscape
	switch mode {
	case queryEscape:
		escapeFunc = url.QueryEscape
	case pathEscape:
		escapeFunc = url.PathEscape
	}

	v, ok := m[tag]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingURLParam, tag)
	}

	// An empty path segment would address a different resource.
	if v == "" && mode != queryEscape && !allowEmpty {
		return 0, fmt.Errorf("%w: %q", ErrEmptyURLParam, tag)
	}

	return w.Write([]byte(escapeFunc(v)))
}

// cloneURL copies u, Userinfo included.
func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	u2 := new(url.URL)
	*u2 = *u
	if u.User != nil {
		u2.User = new(url.Userinfo)
		*u2.User = *u.User
	}
	return u2
}
