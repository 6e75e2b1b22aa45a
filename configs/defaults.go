package configs

import (
	"time"

	"github.com/spf13/viper"

	"github.com/brainflux/eeg-stream/internal/session"
)

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}

	// Session defaults (BrainAccess Halo geometry)
	if !v.IsSet("session.sampling_rate") {
		v.Set("session.sampling_rate", 250)
	}
	if !v.IsSet("session.channel_count") {
		v.Set("session.channel_count", 4)
	}
	if !v.IsSet("session.channel_names") {
		v.Set("session.channel_names", []string{"Fp1", "Fp2", "O1", "O2"})
	}
	if !v.IsSet("session.buffer_duration") {
		v.Set("session.buffer_duration", 5*time.Second)
	}
	if !v.IsSet("session.analysis_interval") {
		v.Set("session.analysis_interval", 1*time.Second)
	}
	if !v.IsSet("session.blink_window") {
		v.Set("session.blink_window", 3*time.Second)
	}
	if !v.IsSet("session.tiredness_window") {
		v.Set("session.tiredness_window", 5*time.Second)
	}
	if !v.IsSet("session.stress_window") {
		v.Set("session.stress_window", 5*time.Second)
	}
	if !v.IsSet("session.ingest_queue_size") {
		v.Set("session.ingest_queue_size", 32)
	}

	// Blink detector defaults
	if !v.IsSet("session.blink.channel") {
		v.Set("session.blink.channel", "Fp1")
	}
	if !v.IsSet("session.blink.threshold_uv") {
		v.Set("session.blink.threshold_uv", 75.0)
	}
	if !v.IsSet("session.blink.refractory_samples") {
		v.Set("session.blink.refractory_samples", 125)
	}

	// Tiredness calibration defaults
	if !v.IsSet("session.tiredness.channels") {
		v.Set("session.tiredness.channels", []string{"O1", "O2"})
	}
	if !v.IsSet("session.tiredness.alert_threshold") {
		v.Set("session.tiredness.alert_threshold", 1.0)
	}
	if !v.IsSet("session.tiredness.tired_threshold") {
		v.Set("session.tiredness.tired_threshold", 3.0)
	}

	// Stress calibration defaults
	if !v.IsSet("session.stress.channels") {
		v.Set("session.stress.channels", []string{"Fp1", "Fp2"})
	}
	if !v.IsSet("session.stress.calm_threshold") {
		v.Set("session.stress.calm_threshold", 0.5)
	}
	if !v.IsSet("session.stress.stress_threshold") {
		v.Set("session.stress.stress_threshold", 1.5)
	}

	// Ingest defaults
	if !v.IsSet("ingest.udp_addr") {
		v.Set("ingest.udp_addr", ":9000")
	}

	// Publish defaults
	if !v.IsSet("publish.http_addr") {
		v.Set("publish.http_addr", ":8080")
	}
	if !v.IsSet("publish.nats.enabled") {
		v.Set("publish.nats.enabled", false)
	}
	if !v.IsSet("publish.nats.url") {
		v.Set("publish.nats.url", "nats://127.0.0.1:4222")
	}
	if !v.IsSet("publish.nats.subject") {
		v.Set("publish.nats.subject", "eeg.results")
	}
	if !v.IsSet("publish.redis.enabled") {
		v.Set("publish.redis.enabled", false)
	}
	if !v.IsSet("publish.redis.addr") {
		v.Set("publish.redis.addr", "127.0.0.1:6379")
	}
	if !v.IsSet("publish.redis.db") {
		v.Set("publish.redis.db", 0)
	}
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	return &Config{
		Verbose:  false,
		LogLevel: "info",
		Session:  session.DefaultConfig(),
		Ingest: IngestConfig{
			UDPAddr: ":9000",
		},
		Publish: PublishConfig{
			HTTPAddr: ":8080",
			NATS: NATSConfig{
				Enabled: false,
				URL:     "nats://127.0.0.1:4222",
				Subject: "eeg.results",
			},
			Redis: RedisConfig{
				Enabled: false,
				Addr:    "127.0.0.1:6379",
				DB:      0,
			},
		},
	}
}
