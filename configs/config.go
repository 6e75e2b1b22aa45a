package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/brainflux/eeg-stream/internal/session"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"`

	// Session configuration: headset geometry, buffer sizing, and the
	// classifier calibration thresholds
	Session session.Config `mapstructure:"session"`

	// Ingest configuration
	Ingest IngestConfig `mapstructure:"ingest"`

	// Publish configuration
	Publish PublishConfig `mapstructure:"publish"`
}

// IngestConfig contains the packet source settings
type IngestConfig struct {
	UDPAddr string `mapstructure:"udp_addr"`
}

// PublishConfig contains the result sink settings
type PublishConfig struct {
	// HTTPAddr serves the websocket stream, the metrics endpoint,
	// and the latest-result endpoint
	HTTPAddr string `mapstructure:"http_addr"`

	NATS  NATSConfig  `mapstructure:"nats"`
	Redis RedisConfig `mapstructure:"redis"`
}

// NATSConfig contains the optional NATS relay settings
type NATSConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

// RedisConfig contains the optional redis persistence settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if err := config.Session.Validate(); err != nil {
		return err
	}

	if config.Ingest.UDPAddr == "" {
		return fmt.Errorf("ingest udp address is required")
	}

	if config.Publish.HTTPAddr == "" {
		return fmt.Errorf("publish http address is required")
	}

	if config.Publish.NATS.Enabled && (config.Publish.NATS.URL == "" || config.Publish.NATS.Subject == "") {
		return fmt.Errorf("nats url and subject are required when nats publishing is enabled")
	}

	if config.Publish.Redis.Enabled && config.Publish.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when redis persistence is enabled")
	}

	return nil
}
