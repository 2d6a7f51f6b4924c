package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setValidEnv sets every required variable to a non-example value
func setValidEnv(t *testing.T) {
	t.Helper()
	clearEnvVars(t)
	t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)
	t.Setenv(EnvHomeboxURL, "http://homebox.local:7745")
	t.Setenv(EnvHomeboxUsername, "user")
	t.Setenv(EnvHomeboxPassword, "password")
	t.Setenv(EnvAPIKey, "0123456789abcdef")
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	clearEnvVars(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearEnvVars(t)
	t.Setenv(EnvSchemaVersion, "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	setValidEnv(t)
	os.Unsetenv(EnvHomeboxPassword)
	os.Unsetenv(EnvAPIKey)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "HOMEBOX_PASSWORD, API_KEY")
}

func TestValidateEnv_AllPresent(t *testing.T) {
	setValidEnv(t)
	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings_ExampleValues(t *testing.T) {
	setValidEnv(t)
	t.Setenv(EnvHomeboxPassword, ExamplePassword)
	t.Setenv(EnvAPIKey, ExampleAPIKey)

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "HOMEBOX_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
}

func TestValidateEnvWithWarnings_TLSVerificationDisabled(t *testing.T) {
	setValidEnv(t)
	t.Setenv(EnvUseHTTPS, "true")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "VERIFY_SSL")

	t.Setenv(EnvVerifySSL, "true")
	warnings, err = ValidateEnvWithWarnings()
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateEnvWithWarnings_ShortPollInterval(t *testing.T) {
	setValidEnv(t)
	t.Setenv(EnvPollIntervalMinutes, "5")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "TOKEN_LIFETIME")

	t.Setenv(EnvTokenLifetime, "1h")
	warnings, err = ValidateEnvWithWarnings()
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateEnvWithWarnings_PropagatesErrors(t *testing.T) {
	clearEnvVars(t)

	warnings, err := ValidateEnvWithWarnings()
	assert.Error(t, err)
	assert.Nil(t, warnings)
}
