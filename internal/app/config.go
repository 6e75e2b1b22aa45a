package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/brainflux/eeg-stream/configs"
)

// loadConfigFromFile loads stream configuration from a file
func loadConfigFromFile(filePath string) (*configs.Config, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file does not exist: %s", filePath)
	}

	// Determine file format
	ext := filepath.Ext(filePath)
	switch ext {
	case ".yaml", ".yml":
		return loadConfigFromYAML(filePath)
	case ".json":
		return loadConfigFromJSON(filePath)
	default:
		// Try YAML first, then JSON
		if cfg, err := loadConfigFromYAML(filePath); err == nil {
			return cfg, nil
		}
		return loadConfigFromJSON(filePath)
	}
}

// loadConfigFromYAML loads from YAML file
func loadConfigFromYAML(filePath string) (*configs.Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML config file: %w", err)
	}

	config := configs.GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return config, nil
}

// loadConfigFromJSON loads from JSON file
func loadConfigFromJSON(filePath string) (*configs.Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON config file: %w", err)
	}

	config := configs.GetDefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	return config, nil
}

// mergeConfig applies CLI flag overrides on top of the loaded config
func mergeConfig(config *configs.Config, ctx *Context) *configs.Config {
	if ctx.UDPAddr != "" {
		config.Ingest.UDPAddr = ctx.UDPAddr
	}
	if ctx.HTTPAddr != "" {
		config.Publish.HTTPAddr = ctx.HTTPAddr
	}
	if ctx.Verbose {
		config.Verbose = true
	}
	return config
}

// GenerateExampleConfig generates an example configuration file
func GenerateExampleConfig(outputFile string) error {
	exampleConfig := configs.GetDefaultConfig()

	// Write to YAML file
	data, err := yaml.Marshal(exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Example configuration written to: %s\n", outputFile)
	return nil
}

// ValidateConfigFile validates a configuration file
func ValidateConfigFile(configFile string) error {
	config, err := loadConfigFromFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Printf("Configuration is valid: %s\n", configFile)
	fmt.Printf("   - Sampling rate: %d Hz\n", config.Session.SamplingRate)
	fmt.Printf("   - Channels: %v\n", config.Session.ChannelNames)
	fmt.Printf("   - Analysis interval: %s\n", config.Session.AnalysisInterval)

	return nil
}
