// Package config loads usersctl settings from USERS_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable read by Load.
const Prefix = "USERS"

// Config holds the settings of usersctl. Command line flags override them.
type Config struct {
	BaseURL  string        `envconfig:"BASE_URL" default:"http://localhost:8080"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"0s"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is json or console.
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// Read from USERS_OTEL_*.
	OTel OTel `envconfig:"OTEL"`

	Telemetry
}

// OTel configures OpenTelemetry export.
type OTel struct {
	Enabled     bool    `envconfig:"ENABLED" default:"false"`
	Endpoint    string  `envconfig:"ENDPOINT" default:"localhost:4317"`
	SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
}

// Telemetry configures Datadog and New Relic. Empty values disable each
// provider.
type Telemetry struct {
	DatadogAddress  string `envconfig:"DATADOG_ADDRESS"`
	NewRelicAppName string `envconfig:"NEW_RELIC_APP_NAME" default:"usersctl"`
	NewRelicLicense string `envconfig:"NEW_RELIC_LICENSE"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return Config{}, fmt.Errorf("config: %s_LOG_FORMAT must be json or console, got %q", Prefix, cfg.LogFormat)
	}

	return cfg, nil
}
