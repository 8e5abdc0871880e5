package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.OTel.Enabled)
	assert.Equal(t, "localhost:4317", cfg.OTel.Endpoint)
	assert.Empty(t, cfg.Telemetry.DatadogAddress)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("USERS_BASE_URL", "https://users.example.com")
	t.Setenv("USERS_TIMEOUT", "250ms")
	t.Setenv("USERS_LOG_LEVEL", "debug")
	t.Setenv("USERS_LOG_FORMAT", "console")
	t.Setenv("USERS_OTEL_ENABLED", "true")
	t.Setenv("USERS_OTEL_ENDPOINT", "collector:4317")
	t.Setenv("USERS_DATADOG_ADDRESS", "datadog:8125")
	t.Setenv("USERS_NEW_RELIC_APP_NAME", "users-cli")
	t.Setenv("USERS_NEW_RELIC_LICENSE", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		BaseURL:   "https://users.example.com",
		Timeout:   250 * time.Millisecond,
		LogLevel:  "debug",
		LogFormat: "console",
		OTel: OTel{
			Enabled:     true,
			Endpoint:    "collector:4317",
			SampleRatio: 1,
		},
		Telemetry: Telemetry{
			DatadogAddress:  "datadog:8125",
			NewRelicAppName: "users-cli",
			NewRelicLicense: "secret",
		},
	}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"USERS_TIMEOUT":    "soon",
		"USERS_LOG_FORMAT": "xml",
	}

	for env, value := range tests {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
