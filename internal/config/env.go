package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envPaths are searched in order; the first .env found is loaded.
var envPaths = []string{".env", "../.env", "../../.env"}

// LoadEnv loads environment variables from the nearest .env file. Variables
// already set in the environment are kept.
func LoadEnv() {
	for _, envPath := range envPaths {
		if err := godotenv.Load(envPath); err == nil {
			return
		}
	}
}

// GetEnv gets environment variable with default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool gets boolean environment variable with default
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}
