package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	EnvSchemaVersion,
	EnvHomeboxURL,
	EnvHomeboxUsername,
	EnvHomeboxPassword,
	EnvAPIKey,
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv(EnvSchemaVersion)
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using example values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv(EnvHomeboxPassword) == ExamplePassword {
		warnings = append(warnings, "HOMEBOX_PASSWORD appears to be using the example value - please set the real account password")
	}

	if os.Getenv(EnvAPIKey) == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	useHTTPS, _ := strconv.ParseBool(os.Getenv(EnvUseHTTPS))
	verifySSL, _ := strconv.ParseBool(os.Getenv(EnvVerifySSL))
	if (useHTTPS || strings.HasPrefix(os.Getenv(EnvHomeboxURL), "https://")) && !verifySSL {
		warnings = append(warnings, "VERIFY_SSL is disabled - TLS certificates from the inventory server will not be checked")
	}

	if os.Getenv(EnvTokenLifetime) == "" {
		if minutes, err := strconv.Atoi(os.Getenv(EnvPollIntervalMinutes)); err == nil && minutes <= ShortPollWarningMinutes {
			warnings = append(warnings, fmt.Sprintf("POLL_INTERVAL_MINUTES is %d and TOKEN_LIFETIME is unset - the assumed token lifetime is inside the refresh margin and every pass will log in again", minutes))
		}
	}

	return warnings, nil
}
