package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luizaranda/go-users/pkg/log"
	"github.com/luizaranda/go-users/pkg/telemetry"
)

// Panics recovers panicking handlers, notifies the error to New Relic and
// answers a 500 error payload.
func Panics() Middleware {
	return func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}

				err, ok := rvr.(error)
				if !ok {
					err = fmt.Errorf("%v", rvr)
				}

				log.Error(r.Context(), "panic recovered", log.Err(err))

				pattern := ""
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					pattern = rctx.RoutePattern()
				}
				telemetry.Incr(r.Context(), "users.http.server.panic_recovered", telemetry.Tags(
					"method", r.Method,
					"handler", telemetry.SanitizeMetricTagValue(pattern),
				))

				EncodeError(w, r, NewError(http.StatusInternalServerError, err.Error()))
			}()

			handler(w, r)
		}
	}
}
