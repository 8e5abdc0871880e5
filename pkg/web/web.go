// Package web holds the helpers used to serve JSON APIs: handlers returning
// errors, middlewares, JSON encoding and {code, message} error payloads.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/luizaranda/go-users/pkg/log"
)

// Handler is an http handler that may fail. Errors are written by
// EncodeError.
type Handler func(w http.ResponseWriter, r *http.Request) error

// Middleware decorates an http.HandlerFunc.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Wrap adapts h into an http.HandlerFunc wrapped by mw, the first middleware
// being the outermost.
func Wrap(h Handler, mw ...Middleware) http.HandlerFunc {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			EncodeError(w, r, err)
		}
	}

	for i := len(mw) - 1; i >= 0; i-- {
		fn = mw[i](fn)
	}

	return fn
}

// EncodeJSON writes v as a JSON response with the given status.
func EncodeJSON(w http.ResponseWriter, v any, status int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if v == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(v)
}

// EncodeError writes err as a {code, message} payload. Errors other than
// *Error are answered with a 500 and logged.
func EncodeError(w http.ResponseWriter, r *http.Request, err error) {
	var webErr *Error
	if !errors.As(err, &webErr) {
		log.Error(r.Context(), "unhandled error", log.Err(err))
		notifyErr(r.Context(), err)
		webErr = &Error{
			Status:  http.StatusInternalServerError,
			Code:    "internal_server_error",
			Message: err.Error(),
		}
	}

	_ = EncodeJSON(w, webErr, webErr.Status)
}
