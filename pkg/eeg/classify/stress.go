package classify

import (
	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/brainflux/eeg-stream/pkg/eeg"
	"github.com/brainflux/eeg-stream/pkg/eeg/spectral"
)

// StressConfig configures the stress classifier. Zero values fall back
// to the frontal defaults.
type StressConfig struct {
	Channels        []string `mapstructure:"channels" yaml:"channels"`
	CalmThreshold   float64  `mapstructure:"calm_threshold" yaml:"calm_threshold"`
	StressThreshold float64  `mapstructure:"stress_threshold" yaml:"stress_threshold"`
}

// DefaultStressConfig returns the population-based defaults.
func DefaultStressConfig() StressConfig {
	return StressConfig{
		Channels:        []string{"Fp1", "Fp2"},
		CalmThreshold:   0.5,
		StressThreshold: 1.5,
	}
}

// Stress scores arousal from the Beta/Alpha power ratio over frontal
// channels, after band-limiting the window to the alpha-beta range.
type Stress struct {
	cfg        StressConfig
	channelIdx []int
	estimator  *spectral.Estimator
	bandLimit  *spectral.FIRFilter
	logger     logging.Logger
}

// NewStress builds the classifier, resolving channel names against the
// session's channel set. Unknown names fail fast.
func NewStress(cfg StressConfig, channels *eeg.ChannelSet, sfreq float64, logger logging.Logger) (*Stress, error) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if len(cfg.Channels) == 0 {
		cfg.Channels = DefaultStressConfig().Channels
	}
	if cfg.CalmThreshold == 0 && cfg.StressThreshold == 0 {
		d := DefaultStressConfig()
		cfg.CalmThreshold = d.CalmThreshold
		cfg.StressThreshold = d.StressThreshold
	}
	if err := validateThresholds(cfg.CalmThreshold, cfg.StressThreshold, "stress"); err != nil {
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

	bandLimit, err := spectral.NewBandPass(eeg.Alpha.Low, eeg.Beta.High, sfreq, int(sfreq)|1)
	if err != nil {
		return nil, err
	}

	return &Stress{
		cfg:        cfg,
		channelIdx: idx,
		estimator:  estimator,
		bandLimit:  bandLimit,
		logger: logger.WithFields(logging.Fields{
			"classifier": "stress",
			"channels":   cfg.Channels,
		}),
	}, nil
}

func (s *Stress) Name() string {
	return "stress"
}

// Compute scores one window. An alpha denominator under the epsilon
// floor yields the neutral (0, 0) indicator.
func (s *Stress) Compute(window [][]float64) (eeg.Indicator, error) {
	picked, err := subset(window, s.channelIdx)
	if err != nil {
		return eeg.Indicator{}, err
	}

	filtered := make([][]float64, len(picked))
	for i, ch := range picked {
		filtered[i] = s.bandLimit.Apply(ch)
	}

	alpha, err := s.estimator.BandPowerMatrix(filtered, eeg.Alpha)
	if err != nil {
		return eeg.Indicator{}, err
	}
	beta, err := s.estimator.BandPowerMatrix(filtered, eeg.Beta)
	if err != nil {
		return eeg.Indicator{}, err
	}

	if alpha < denominatorEpsilon {
		return eeg.Indicator{}, nil
	}

	ratio := beta / alpha
	return eeg.Indicator{
		Percentage: rampNormalize(ratio, s.cfg.CalmThreshold, s.cfg.StressThreshold),
		Ratio:      ratio,
	}, nil
}
