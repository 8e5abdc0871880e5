package users

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultBaseURL is the users API address used when none is configured.
	DefaultBaseURL = "http://localhost:8080"

	_usersPath = "/api/users"
	_userPath  = "/api/users/{id}"
)

var _validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the fixed configuration of a Client: the address every request
// path is appended to and the headers sent with every request.
type Config struct {
	BaseURL        string `validate:"required,url"`
	DefaultHeaders http.Header
}

// DefaultConfig returns the configuration used by NewClient before options
// are applied.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		DefaultHeaders: http.Header{
			"Content-Type": {"application/json"},
		},
	}
}

// Validate reports whether c can be used to build a Client.
func (c Config) Validate() error {
	if err := _validate.Struct(c); err != nil {
		return fmt.Errorf("users: invalid config: %w", err)
	}
	return nil
}

// clone returns a deep copy of c.
func (c Config) clone() Config {
	return Config{
		BaseURL:        c.BaseURL,
		DefaultHeaders: c.DefaultHeaders.Clone(),
	}
}
