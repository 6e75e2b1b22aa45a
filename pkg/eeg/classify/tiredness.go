package classify

import (
	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/brainflux/eeg-stream/pkg/eeg"
	"github.com/brainflux/eeg-stream/pkg/eeg/spectral"
)

// TirednessConfig configures the tiredness classifier. Zero values fall
// back to the occipital defaults.
type TirednessConfig struct {
	Channels       []string `mapstructure:"channels" yaml:"channels"`
	AlertThreshold float64  `mapstructure:"alert_threshold" yaml:"alert_threshold"`
	TiredThreshold float64  `mapstructure:"tired_threshold" yaml:"tired_threshold"`
}

// DefaultTirednessConfig returns the population-based defaults.
func DefaultTirednessConfig() TirednessConfig {
	return TirednessConfig{
		Channels:       []string{"O1", "O2"},
		AlertThreshold: 1.0,
		TiredThreshold: 3.0,
	}
}

// Tiredness scores drowsiness from the (Alpha+Theta)/Beta power ratio
// over occipital channels. No artifact rejection is applied, so noisy
// segments inflate the low-frequency numerator.
type Tiredness struct {
	cfg        TirednessConfig
	channelIdx []int
	estimator  *spectral.Estimator
	logger     logging.Logger
}

// NewTiredness builds the classifier, resolving channel names against
// the session's channel set. Unknown names fail fast.
func NewTiredness(cfg TirednessConfig, channels *eeg.ChannelSet, sfreq float64, logger logging.Logger) (*Tiredness, error) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if len(cfg.Channels) == 0 {
		cfg.Channels = DefaultTirednessConfig().Channels
	}
	if cfg.AlertThreshold == 0 && cfg.TiredThreshold == 0 {
		d := DefaultTirednessConfig()
		cfg.AlertThreshold = d.AlertThreshold
		cfg.TiredThreshold = d.TiredThreshold
	}
	if err := validateThresholds(cfg.AlertThreshold, cfg.TiredThreshold, "tiredness"); err != nil {
		return nil, err
	}

	idx, err := channels.Pick(cfg.Channels...)
	if err != nil {
		return nil, err
	}

	estimator, err := spectral.NewEstimator(sfreq, logger)
	if err != nil {
		return nil, err
	}

	return &Tiredness{
		cfg:        cfg,
		channelIdx: idx,
		estimator:  estimator,
		logger: logger.WithFields(logging.Fields{
			"classifier": "tiredness",
			"channels":   cfg.Channels,
		}),
	}, nil
}

func (t *Tiredness) Name() string {
	return "tiredness"
}

// Compute scores one window. A beta denominator under the epsilon floor
// yields the neutral (0, 0) indicator.
func (t *Tiredness) Compute(window [][]float64) (eeg.Indicator, error) {
	picked, err := subset(window, t.channelIdx)
	if err != nil {
		return eeg.Indicator{}, err
	}

	alpha, err := t.estimator.BandPowerMatrix(picked, eeg.Alpha)
	if err != nil {
		return eeg.Indicator{}, err
	}
	theta, err := t.estimator.BandPowerMatrix(picked, eeg.Theta)
	if err != nil {
		return eeg.Indicator{}, err
	}
	beta, err := t.estimator.BandPowerMatrix(picked, eeg.Beta)
	if err != nil {
		return eeg.Indicator{}, err
	}

	if beta < denominatorEpsilon {
		return eeg.Indicator{}, nil
	}

	ratio := (alpha + theta) / beta
	return eeg.Indicator{
		Percentage: rampNormalize(ratio, t.cfg.AlertThreshold, t.cfg.TiredThreshold),
		Ratio:      ratio,
	}, nil
}
