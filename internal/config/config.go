package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Inventory server
	HomeboxURL          string `validate:"required"`
	HomeboxUsername     string `validate:"required"`
	HomeboxPassword     string `validate:"required"`
	PollIntervalMinutes int    `validate:"min=1,max=1440"`
	TokenLifetime       time.Duration
	VerifySSL           bool
	UseHTTPS            bool
	LabelFilter         string
	RequestTimeout      time.Duration `validate:"gt=0"`

	// HTTP service
	Port        int    `validate:"min=1,max=65535"`
	APIKey      string `validate:"required"` // API key for authentication
	ExternalURL string `validate:"omitempty,url"`
	WebhookID   string
	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honoured
	TrustedProxies []string

	// Host areas
	HostAreas []string
	AreasFile string

	// MQTT discovery, disabled when MQTTBroker is empty
	MQTTBroker          string `validate:"omitempty,url"`
	MQTTUsername        string
	MQTTPassword        string
	MQTTClientID        string
	MQTTDiscoveryPrefix string

	LogLevel       string
	LogFormat      string
	LogDir         string
	Environment    string
	Version        string
	DeadLetterPath string
}

// Load loads the configuration from environment variables. Any envFiles are
// loaded first; with none, a .env file in the working directory is used if present.
func Load(envFiles ...string) (*Config, error) {
	// Don't fail on a missing .env, real env vars may be set
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		HomeboxURL:          getEnv(EnvHomeboxURL, ""),
		HomeboxUsername:     getEnv(EnvHomeboxUsername, ""),
		HomeboxPassword:     getEnv(EnvHomeboxPassword, ""),
		PollIntervalMinutes: getEnvAsInt(EnvPollIntervalMinutes, DefaultPollIntervalMinutes),
		TokenLifetime:       getEnvAsDuration(EnvTokenLifetime, 0),
		VerifySSL:           getEnvAsBool(EnvVerifySSL, false),
		UseHTTPS:            getEnvAsBool(EnvUseHTTPS, false),
		LabelFilter:         getEnv(EnvLabelFilter, ""),
		RequestTimeout:      getEnvAsDuration(EnvRequestTimeout, DefaultRequestTimeout),

		APIKey:      getEnv(EnvAPIKey, ""),
		ExternalURL: strings.TrimSuffix(getEnv(EnvExternalURL, ""), "/"),
		WebhookID:   getEnv(EnvWebhookID, ""),

		TrustedProxies: getEnvAsList(EnvTrustedProxies),

		HostAreas: getEnvAsList(EnvHostAreas),
		AreasFile: getEnv(EnvAreasFile, ""),

		MQTTBroker:          getEnv(EnvMQTTBroker, ""),
		MQTTUsername:        getEnv(EnvMQTTUsername, ""),
		MQTTPassword:        getEnv(EnvMQTTPassword, ""),
		MQTTClientID:        getEnv(EnvMQTTClientID, DefaultMQTTClientID),
		MQTTDiscoveryPrefix: getEnv(EnvMQTTDiscoveryPrefix, DefaultMQTTDiscoveryPrefix),

		LogLevel:       getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:      getEnv(EnvLogFormat, DefaultLogFormat),
		LogDir:         getEnv(EnvLogDir, DefaultLogDir),
		Environment:    getEnv(EnvEnvironment, DefaultEnvironment),
		Version:        getEnv(EnvVersion, DefaultVersion),
		DeadLetterPath: getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and reports every violation at once
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			problems = append(problems, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// PollInterval returns the refresh cadence
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMinutes) * time.Minute
}

// EffectiveTokenLifetime is the assumed token lifetime when the server gives no
// expiry. It defaults to the poll interval.
func (c *Config) EffectiveTokenLifetime() time.Duration {
	if c.TokenLifetime > 0 {
		return c.TokenLifetime
	}
	return c.PollInterval()
}

// MQTTEnabled reports whether sensor publishing over MQTT is configured
func (c *Config) MQTTEnabled() bool {
	return c.MQTTBroker != ""
}

// WebhookURL returns the public URL the inventory server should notify, or ""
// when no external URL is configured.
func (c *Config) WebhookURL() string {
	if c.ExternalURL == "" || c.WebhookID == "" {
		return ""
	}
	return c.ExternalURL + "/api/webhook/" + c.WebhookID
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool parses a boolean variable (1/0, true/false, ...)
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a Go duration string such as "30s"; bare numbers are rejected
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
