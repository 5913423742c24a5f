package config

import (
	"os"

	"github.com/spf13/viper"
)

// Environment variable names honored alongside flags. Viper binds them
// with the TABFUSE_ prefix; these are the fully prefixed forms checked
// directly against the OS environment as well.
const (
	// EnvConfigFile overrides the config file path.
	EnvConfigFile = "TABFUSE_CONFIG"

	// EnvOutputFile overrides the merged output path.
	EnvOutputFile = "TABFUSE_OUTPUT"

	// EnvLogLevel overrides the log level.
	EnvLogLevel = "TABFUSE_LOG_LEVEL"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// ResolvePath returns the config file path to load: the explicit flag
// value when given, then the environment override, then the default
// file name.
func ResolvePath(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := GetString(EnvConfigFile); env != "" {
		return env
	}
	return fallback
}
