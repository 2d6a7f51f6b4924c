package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets the minimum variables Load needs to succeed
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(EnvHomeboxURL, "homebox.local:7745")
	t.Setenv(EnvHomeboxUsername, "user@example.com")
	t.Setenv(EnvHomeboxPassword, "secret")
	t.Setenv(EnvAPIKey, "test-key")
}

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when only required vars set", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, 60, cfg.PollIntervalMinutes)
		assert.Equal(t, time.Hour, cfg.PollInterval())
		assert.Equal(t, time.Hour, cfg.EffectiveTokenLifetime(), "Token lifetime defaults to the poll interval")
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.False(t, cfg.VerifySSL)
		assert.False(t, cfg.UseHTTPS)
		assert.Empty(t, cfg.LabelFilter)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "homebox-bridge", cfg.MQTTClientID)
		assert.Equal(t, "homeassistant", cfg.MQTTDiscoveryPrefix)
		assert.False(t, cfg.MQTTEnabled())
		assert.Empty(t, cfg.WebhookURL())
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)

		t.Setenv(EnvPort, "3000")
		t.Setenv(EnvPollIntervalMinutes, "15")
		t.Setenv(EnvTokenLifetime, "2h")
		t.Setenv(EnvVerifySSL, "true")
		t.Setenv(EnvUseHTTPS, "1")
		t.Setenv(EnvLabelFilter, "Tools")
		t.Setenv(EnvRequestTimeout, "5s")
		t.Setenv(EnvHostAreas, "Kitchen, Garage,, Office ")
		t.Setenv(EnvExternalURL, "https://bridge.example.com/")
		t.Setenv(EnvWebhookID, "abc123")
		t.Setenv(EnvTrustedProxies, "10.0.0.1,10.0.0.2")
		t.Setenv(EnvMQTTBroker, "tcp://broker.local:1883")
		t.Setenv(EnvLogFormat, "json")
		t.Setenv(EnvEnvironment, "production")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, 15*time.Minute, cfg.PollInterval())
		assert.Equal(t, 2*time.Hour, cfg.EffectiveTokenLifetime())
		assert.True(t, cfg.VerifySSL)
		assert.True(t, cfg.UseHTTPS)
		assert.Equal(t, "Tools", cfg.LabelFilter)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, []string{"Kitchen", "Garage", "Office"}, cfg.HostAreas)
		assert.Equal(t, "https://bridge.example.com/api/webhook/abc123", cfg.WebhookURL())
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
		assert.True(t, cfg.MQTTEnabled())
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "production", cfg.Environment)
	})

	t.Run("returns error when API_KEY is missing", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		os.Unsetenv(EnvAPIKey)

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "API_KEY")
		assert.Contains(t, err.Error(), "must be set")
	})

	t.Run("returns error when credentials are missing", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvAPIKey, "test-key")

		cfg, err := Load()

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "HomeboxURL failed required")
		assert.Contains(t, err.Error(), "HomeboxPassword failed required")
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv(EnvPort, "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("poll interval bounds", func(t *testing.T) {
		testCases := []struct {
			name        string
			value       string
			shouldError bool
		}{
			{"minimum", "1", false},
			{"maximum", "1440", false},
			{"zero", "0", true},
			{"above maximum", "1441", true},
			{"invalid falls back to default", "hourly", false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				setRequired(t)
				t.Setenv(EnvPollIntervalMinutes, tc.value)

				_, err := Load()

				if tc.shouldError {
					require.Error(t, err)
					assert.Contains(t, err.Error(), "PollIntervalMinutes")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("PORT edge cases", func(t *testing.T) {
		testCases := []struct {
			name        string
			portValue   string
			shouldError bool
		}{
			{"max valid port", "65535", false},
			{"zero port", "0", true},
			{"above max port", "65536", true},
			{"float port", "8080.5", true},
			{"empty string", "", true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				setRequired(t)
				t.Setenv(EnvPort, tc.portValue)

				_, err := Load()

				if tc.shouldError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("rejects malformed external URL", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv(EnvExternalURL, "not a url")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ExternalURL")
	})

	t.Run("loads an explicit env file", func(t *testing.T) {
		clearEnvVars(t)
		path := filepath.Join(t.TempDir(), "bridge.env")
		content := "HOMEBOX_URL=http://homebox:7745\nHOMEBOX_USERNAME=me\nHOMEBOX_PASSWORD=pw\nAPI_KEY=file-key\nLABEL_FILTER=Garage\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Cleanup(func() { clearEnvVars(t) })

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "http://homebox:7745", cfg.HomeboxURL)
		assert.Equal(t, "file-key", cfg.APIKey)
		assert.Equal(t, "Garage", cfg.LabelFilter)
	})
}

func TestWebhookURL(t *testing.T) {
	cfg := &Config{ExternalURL: "https://ha.example.com", WebhookID: "hook"}
	assert.Equal(t, "https://ha.example.com/api/webhook/hook", cfg.WebhookURL())

	cfg.WebhookID = ""
	assert.Empty(t, cfg.WebhookURL(), "Needs an id")
}

// clearEnvVars unsets every variable Load reads so tests start clean
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		EnvSchemaVersion,
		EnvHomeboxURL, EnvHomeboxUsername, EnvHomeboxPassword,
		EnvPollIntervalMinutes, EnvTokenLifetime, EnvVerifySSL, EnvUseHTTPS,
		EnvLabelFilter, EnvRequestTimeout,
		EnvPort, EnvAPIKey, EnvExternalURL, EnvWebhookID, EnvTrustedProxies,
		EnvHostAreas, EnvAreasFile,
		EnvMQTTBroker, EnvMQTTUsername, EnvMQTTPassword, EnvMQTTClientID, EnvMQTTDiscoveryPrefix,
		EnvLogLevel, EnvLogFormat, EnvLogDir, EnvEnvironment, EnvVersion, EnvDeadLetterPath,
	}

	for _, key := range envVars {
		os.Unsetenv(key)
	}
}
