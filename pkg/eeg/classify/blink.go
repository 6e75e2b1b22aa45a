package classify

import (
	"math"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/brainflux/eeg-stream/pkg/eeg"
	"github.com/brainflux/eeg-stream/pkg/eeg/spectral"
)

// Blink band edges. Blinks are low-frequency, high-amplitude frontal
// artifacts; band-limiting suppresses muscle and line noise while
// preserving blink morphology.
const (
	blinkBandLowHz  = 1.0
	blinkBandHighHz = 10.0
)

// BlinkConfig configures the blink detector. Zero values fall back to
// the frontal defaults.
type BlinkConfig struct {
	Channel           string  `mapstructure:"channel" yaml:"channel"`
	ThresholdUV       float64 `mapstructure:"threshold_uv" yaml:"threshold_uv"`
	RefractorySamples int     `mapstructure:"refractory_samples" yaml:"refractory_samples"`
}

// DefaultBlinkConfig returns the frontal defaults: 75 µV floor and a
// 0.5 s refractory distance at 250 Hz.
func DefaultBlinkConfig() BlinkConfig {
	return BlinkConfig{
		Channel:           "Fp1",
		ThresholdUV:       75,
		RefractorySamples: 125,
	}
}

// Blink detects eye blinks as threshold-crossing peaks in the 1-10 Hz
// band of a frontal channel. The detector is handed an oversized window
// and only inspects the centered analysis segment, keeping filter
// transients out of the decision.
type Blink struct {
	cfg        BlinkConfig
	channelIdx int
	sfreq      float64
	logger     logging.Logger
}

// NewBlink builds the detector, resolving the target channel against
// the session's channel set. An unknown channel fails fast.
func NewBlink(cfg BlinkConfig, channels *eeg.ChannelSet, sfreq float64, logger logging.Logger) (*Blink, error) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	d := DefaultBlinkConfig()
	if cfg.Channel == "" {
		cfg.Channel = d.Channel
	}
	if cfg.ThresholdUV == 0 {
		cfg.ThresholdUV = d.ThresholdUV
	}
	if cfg.RefractorySamples == 0 {
		cfg.RefractorySamples = d.RefractorySamples
	}
	if cfg.ThresholdUV < 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "blink threshold must be non-negative", nil)
	}
	if cfg.RefractorySamples < 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "blink refractory distance must be non-negative", nil)
	}

	idx, err := channels.Pick(cfg.Channel)
	if err != nil {
		return nil, err
	}

	return &Blink{
		cfg:        cfg,
		channelIdx: idx[0],
		sfreq:      sfreq,
		logger: logger.WithFields(logging.Fields{
			"classifier": "blink",
			"channel":    cfg.Channel,
		}),
	}, nil
}

func (b *Blink) Name() string {
	return "blink"
}

// Detect reports whether the centered analysisSamples of the window
// contain at least one blink peak. Window values are microvolts. A
// window no longer than analysisSamples is rejected as too short.
func (b *Blink) Detect(window [][]float64, analysisSamples int) (bool, error) {
	centered, err := spectral.FilterCentered(window, blinkBandLowHz, blinkBandHighHz, b.sfreq, analysisSamples)
	if err != nil {
		return false, err
	}
	if b.channelIdx >= len(centered) {
		return false, eeg.NewError(eeg.ErrCodeShape, "window narrower than configured channel set", nil)
	}

	segment := centered[b.channelIdx]
	for i, v := range segment {
		segment[i] = math.Abs(v)
	}

	peaks := spectral.FindPeaks(segment, b.cfg.ThresholdUV, b.cfg.RefractorySamples)
	return len(peaks) > 0, nil
}
