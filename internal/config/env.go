package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envPaths are tried in order; the first one found is loaded.
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from a .env file if one exists.
// Variables already present in the process environment are not overridden.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}

	// Not finding one is fine, the environment may be set system-wide.
	return "", nil
}

// InitializeConfig loads the .env file, the optional YAML file at path and the
// environment. Callers apply command-line overrides and then call Validate.
func InitializeConfig(path string) (*Config, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
