package config

import "time"

// Environment variable names
const (
	EnvSchemaVersion = "ENV_SCHEMA_VERSION"

	EnvHomeboxURL          = "HOMEBOX_URL"
	EnvHomeboxUsername     = "HOMEBOX_USERNAME"
	EnvHomeboxPassword     = "HOMEBOX_PASSWORD"
	EnvPollIntervalMinutes = "POLL_INTERVAL_MINUTES"
	EnvTokenLifetime       = "TOKEN_LIFETIME"
	EnvVerifySSL           = "VERIFY_SSL"
	EnvUseHTTPS            = "USE_HTTPS"
	EnvLabelFilter         = "LABEL_FILTER"
	EnvRequestTimeout      = "REQUEST_TIMEOUT"

	EnvPort           = "PORT"
	EnvAPIKey         = "API_KEY"
	EnvExternalURL    = "EXTERNAL_URL"
	EnvWebhookID      = "WEBHOOK_ID"
	EnvTrustedProxies = "TRUSTED_PROXIES"

	EnvHostAreas = "HOST_AREAS"
	EnvAreasFile = "AREAS_FILE"

	EnvMQTTBroker          = "MQTT_BROKER"
	EnvMQTTUsername        = "MQTT_USERNAME"
	EnvMQTTPassword        = "MQTT_PASSWORD"
	EnvMQTTClientID        = "MQTT_CLIENT_ID"
	EnvMQTTDiscoveryPrefix = "MQTT_DISCOVERY_PREFIX"

	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvLogDir         = "LOG_DIR"
	EnvEnvironment    = "ENVIRONMENT"
	EnvVersion        = "VERSION"
	EnvDeadLetterPath = "EVENT_DEADLETTER_PATH"
)

// Defaults
const (
	DefaultPollIntervalMinutes = 60
	DefaultRequestTimeout      = 30 * time.Second
	DefaultPort                = 8080
	DefaultMQTTClientID        = "homebox-bridge"
	DefaultMQTTDiscoveryPrefix = "homeassistant"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultLogDir              = "logs"
	DefaultEnvironment         = "dev"
	DefaultVersion             = "dev"
	DefaultDeadLetterPath      = "logs/event_deadletter.jsonl"

	// MinPollIntervalMinutes and MaxPollIntervalMinutes bound POLL_INTERVAL_MINUTES
	MinPollIntervalMinutes = 1
	MaxPollIntervalMinutes = 1440

	// ShortPollWarningMinutes is the interval at or below which a default token
	// lifetime falls inside the refresh margin.
	ShortPollWarningMinutes = 5
)

// Example values shipped in .env.example
const (
	ExampleAPIKey   = "generate_with_openssl_rand_hex_32"
	ExamplePassword = "change_this_password"
)

// listSeparator splits list-valued variables such as HOST_AREAS
const listSeparator = ","
