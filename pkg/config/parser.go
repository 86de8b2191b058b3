package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseFile reads, schema-validates, and parses a configuration file.
// Missing required values fail here, before any client is constructed.
func ParseFile(configFile string) (*Config, error) {
	if err := ValidateFile(configFile); err != nil {
		return nil, err
	}

	file, err := os.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}
