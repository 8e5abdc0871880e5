package transport

import (
	"net/http"

	"github.com/gofrs/uuid"

	"github.com/luizaranda/go-users/pkg/telemetry/tracing"
)

// RequestIDHook sets the X-Request-Id header on requests lacking one. The
// value is taken from the request context when present (see
// tracing.WithRequestID) or generated as a random UUID otherwise.
func RequestIDHook(req *http.Request) error {
	if req.Header.Get(tracing.RequestIDHeader) != "" {
		return nil
	}

	id := tracing.RequestID(req.Context())
	if id == "" {
		v4, err := uuid.NewV4()
		if err != nil {
			return err
		}
		id = v4.String()
	}

	req.Header.Set(tracing.RequestIDHeader, id)
	return nil
}
