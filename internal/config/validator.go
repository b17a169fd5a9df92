package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// placeholderValues are the sample values shipped in .env.example. Running
// with one of these still set is almost certainly a deployment mistake.
var placeholderValues = []struct {
	envVar  string
	value   string
	warning string
}{
	{"DB_PASSWORD", "change_this_secure_password",
		"DB_PASSWORD appears to be using the example value - please use a secure password"},
	{"API_KEY", "generate_with_openssl_rand_hex_32",
		"API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32"},
}

// ValidateEnv checks the schema version first, then that every required
// variable is present. Missing variables are reported together in one error.
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
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

// ValidateEnvWithWarnings runs ValidateEnv and adds non-fatal warnings for
// variables still carrying a placeholder value.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, p := range placeholderValues {
		if os.Getenv(p.envVar) == p.value {
			warnings = append(warnings, p.warning)
		}
	}
	return warnings, nil
}
