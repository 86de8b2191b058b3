package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// DefaultMarkerKey is the consumer-bucket object that records the last
// successful sync time.
const DefaultMarkerKey = "_s3_hydration_last_sync"

// Environment variables read by FromEnv
const (
	EnvProducerBucket      = "PRODUCER_BUCKET"
	EnvConsumerBucket      = "CONSUMER_BUCKET"
	EnvCrossAccountRoleARN = "CROSS_ACCOUNT_ROLE_ARN"
	EnvExternalID          = "EXTERNAL_ID"
	EnvConsumerKMSKeyID    = "CONSUMER_KMS_KEY_ID"
	EnvProducerKMSKeyARN   = "PRODUCER_KMS_KEY_ARN"
	EnvTransferPrefix      = "TRANSFER_PREFIX"
	EnvMarkerKey           = "MARKER_KEY"
	EnvAWSRegion           = "AWS_REGION"
	EnvMaxConcurrent       = "MAX_CONCURRENT_TRANSFERS"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
)

// ErrMissingValue indicates a required configuration value is absent or empty
var ErrMissingValue = errors.New("missing required configuration")

// Config is the immutable configuration for one hydration run
type Config struct {
	ProducerBucket      string `json:"producer_bucket"`
	ConsumerBucket      string `json:"consumer_bucket"`
	CrossAccountRoleARN string `json:"cross_account_role_arn"`
	ExternalID          string `json:"external_id"`
	ConsumerKMSKeyID    string `json:"consumer_kms_key_id"`
	// ProducerKMSKeyARN is recorded for operators; reads decrypt transparently
	// under the assumed role, so it is not passed to any client.
	ProducerKMSKeyARN string `json:"producer_kms_key_arn"`

	TransferPrefix string `json:"transfer_prefix,omitempty"` // empty means all keys
	MarkerKey      string `json:"marker_key,omitempty"`

	Region                 string `json:"region,omitempty"`
	MaxConcurrentTransfers int    `json:"max_concurrent_transfers,omitempty"` // default: 1 (sequential)
	LogLevel               string `json:"log_level,omitempty"`                // debug, info, warn, error (default: info)
	LogFormat              string `json:"log_format,omitempty"`               // json, console (default: json)
}

// FromEnv loads configuration from environment variables. It fails before
// any network activity if a required variable is absent or empty.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ProducerBucket:      os.Getenv(EnvProducerBucket),
		ConsumerBucket:      os.Getenv(EnvConsumerBucket),
		CrossAccountRoleARN: os.Getenv(EnvCrossAccountRoleARN),
		ExternalID:          os.Getenv(EnvExternalID),
		ConsumerKMSKeyID:    os.Getenv(EnvConsumerKMSKeyID),
		ProducerKMSKeyARN:   os.Getenv(EnvProducerKMSKeyARN),
		TransferPrefix:      os.Getenv(EnvTransferPrefix),
		MarkerKey:           os.Getenv(EnvMarkerKey),
		Region:              os.Getenv(EnvAWSRegion),
		LogLevel:            os.Getenv(EnvLogLevel),
		LogFormat:           os.Getenv(EnvLogFormat),
	}

	if v := os.Getenv(EnvMaxConcurrent); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvMaxConcurrent, err)
		}
		cfg.MaxConcurrentTransfers = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Validate checks that every required value is present. The error names the
// environment variable that would supply the missing value.
func (c *Config) Validate() error {
	required := []struct {
		value string
		env   string
	}{
		{c.ProducerBucket, EnvProducerBucket},
		{c.ConsumerBucket, EnvConsumerBucket},
		{c.CrossAccountRoleARN, EnvCrossAccountRoleARN},
		{c.ExternalID, EnvExternalID},
		{c.ConsumerKMSKeyID, EnvConsumerKMSKeyID},
		{c.ProducerKMSKeyARN, EnvProducerKMSKeyARN},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingValue, r.env)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.MarkerKey == "" {
		c.MarkerKey = DefaultMarkerKey
	}
	if c.MaxConcurrentTransfers <= 0 {
		c.MaxConcurrentTransfers = 1
	}
}

// GetMaxConcurrentTransfers returns the per-object concurrency bound (defaults to 1)
func (c *Config) GetMaxConcurrentTransfers() int {
	if c.MaxConcurrentTransfers > 0 {
		return c.MaxConcurrentTransfers
	}
	return 1
}

// GetMarkerKey returns the marker object key (defaults to DefaultMarkerKey)
func (c *Config) GetMarkerKey() string {
	if c.MarkerKey != "" {
		return c.MarkerKey
	}
	return DefaultMarkerKey
}

// GetLogLevel returns the log level (defaults to info)
func (c *Config) GetLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "info"
}

// GetLogFormat returns the log format (defaults to json)
func (c *Config) GetLogFormat() string {
	if c.LogFormat != "" {
		return c.LogFormat
	}
	return "json"
}

func parsePositiveInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", v)
	}
	if n < 1 {
		return 0, fmt.Errorf("must be >= 1, got %d", n)
	}
	return n, nil
}
