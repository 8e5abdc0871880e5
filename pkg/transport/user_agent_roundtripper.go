package transport

import (
	"net/http"

	"github.com/luizaranda/go-users/pkg/internal"
)

// UserAgentDecorator returns a RoundTripDecorator setting a default
// User-Agent header.
func UserAgentDecorator() RoundTripDecorator {
	return func(base http.RoundTripper) http.RoundTripper {
		return &UserAgentRoundTripper{Transport: base}
	}
}

// UserAgentRoundTripper sets User-Agent to users-go/x.y.z, x.y.z being the
// module build version, on requests that have none.
type UserAgentRoundTripper struct {
	Transport http.RoundTripper
}

func (ua *UserAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.UserAgent() == "" {
		req.Header.Set("User-Agent", internal.UserAgent())
	}

	return ua.Transport.RoundTrip(req)
}
