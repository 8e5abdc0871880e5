package web

import (
	"net/http"

	"github.com/luizaranda/go-users/pkg/log"
)

const (
	_requestIDHeader = "X-Request-Id"
	_debugHeader     = "X-Debug"
)

// Logger puts logger in the request context, tagged with the X-Request-Id
// of the request. Requests with X-Debug: true log at debug level.
func Logger(logger log.Logger) Middleware {
	return func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			l := logger

			if r.Header.Get(_debugHeader) == "true" {
				l = l.WithLevel(log.DebugLevel)
			}

			if reqID := r.Header.Get(_requestIDHeader); reqID != "" {
				l = l.With(log.String("request_id", reqID))
			}

			handler(w, r.WithContext(log.Context(r.Context(), l)))
		}
	}
}
