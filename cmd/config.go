package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brainflux/eeg-stream/configs"
	"github.com/brainflux/eeg-stream/internal/app"
)

var (
	// Config command flags
	configOutputFile string
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect, validate, and generate configuration",
}

// configShowCmd displays the resolved configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display all resolved configuration values",
	Long: `Load the configuration and display all values in a structured format
to verify that your YAML configuration is being parsed correctly.

Examples:
  # Show resolved defaults
  eeg-stream config show

  # Show with a specific config file
  eeg-stream --config /path/to/config.yaml config show`,
	RunE: runConfigShow,
}

// configValidateCmd validates a configuration file
var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ValidateConfigFile(args[0])
	},
}

// configExampleCmd writes an example configuration file
var configExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Generate an example configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.GenerateExampleConfig(configOutputFile)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configExampleCmd)

	configExampleCmd.Flags().StringVarP(&configOutputFile, "output", "o",
		"eeg-stream.yaml", "output file for the example configuration")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Println("EEG STREAM CONFIGURATION")
	fmt.Println(strings.Repeat("=", 80))

	// Load configuration
	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	printSection("APPLICATION SETTINGS")
	printKeyValue("Verbose", fmt.Sprintf("%t", config.Verbose))
	printKeyValue("Log Level", config.LogLevel)

	printSection("SESSION CONFIGURATION")
	printKeyValue("Sampling Rate", fmt.Sprintf("%d Hz", config.Session.SamplingRate))
	printKeyValue("Channel Count", fmt.Sprintf("%d", config.Session.ChannelCount))
	printKeyValue("Channels", strings.Join(config.Session.ChannelNames, ", "))
	printKeyValue("Buffer Duration", config.Session.BufferDuration.String())
	printKeyValue("Analysis Interval", config.Session.AnalysisInterval.String())
	printKeyValue("Blink Window", config.Session.BlinkWindow.String())
	printKeyValue("Tiredness Window", config.Session.TirednessWindow.String())
	printKeyValue("Stress Window", config.Session.StressWindow.String())
	printKeyValue("Ingest Queue Size", fmt.Sprintf("%d", config.Session.IngestQueueSize))

	printSubsection("Blink Detector")
	printKeyValue("  Channel", config.Session.Blink.Channel)
	printKeyValue("  Threshold", fmt.Sprintf("%.1f uV", config.Session.Blink.ThresholdUV))
	printKeyValue("  Refractory", fmt.Sprintf("%d samples", config.Session.Blink.RefractorySamples))

	printSubsection("Tiredness Calibration")
	printKeyValue("  Channels", strings.Join(config.Session.Tiredness.Channels, ", "))
	printKeyValue("  Alert Threshold", fmt.Sprintf("%.2f", config.Session.Tiredness.AlertThreshold))
	printKeyValue("  Tired Threshold", fmt.Sprintf("%.2f", config.Session.Tiredness.TiredThreshold))

	printSubsection("Stress Calibration")
	printKeyValue("  Channels", strings.Join(config.Session.Stress.Channels, ", "))
	printKeyValue("  Calm Threshold", fmt.Sprintf("%.2f", config.Session.Stress.CalmThreshold))
	printKeyValue("  Stress Threshold", fmt.Sprintf("%.2f", config.Session.Stress.StressThreshold))

	printSection("INGEST CONFIGURATION")
	printKeyValue("UDP Address", config.Ingest.UDPAddr)

	printSection("PUBLISH CONFIGURATION")
	printKeyValue("HTTP Address", config.Publish.HTTPAddr)
	printKeyValue("NATS Enabled", fmt.Sprintf("%t", config.Publish.NATS.Enabled))
	if config.Publish.NATS.Enabled {
		printKeyValue("NATS URL", config.Publish.NATS.URL)
		printKeyValue("NATS Subject", config.Publish.NATS.Subject)
	}
	printKeyValue("Redis Enabled", fmt.Sprintf("%t", config.Publish.Redis.Enabled))
	if config.Publish.Redis.Enabled {
		printKeyValue("Redis Address", config.Publish.Redis.Addr)
		printKeyValue("Redis DB", fmt.Sprintf("%d", config.Publish.Redis.DB))
	}

	fmt.Println()
	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	fmt.Println("Configuration is valid.")

	return nil
}

func printSection(title string) {
	fmt.Printf("\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func printSubsection(title string) {
	fmt.Printf("\n  %s\n", title)
}

func printKeyValue(key, value string) {
	fmt.Printf("  %-24s %s\n", key, value)
}
