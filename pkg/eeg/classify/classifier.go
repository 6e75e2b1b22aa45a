// Package classify derives cognitive-state indicators from windows of
// multichannel EEG. Every classifier maps one or more band-power ratios
// to a 0-100 percentage through linear-ramp normalization between two
// calibration thresholds. The thresholds are heuristic constants, not
// trained parameters.
package classify

import (
	"fmt"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

// Classifier computes one indicator from a channel-major window whose
// row order matches the session's ChannelSet.
type Classifier interface {
	Name() string
	Compute(window [][]float64) (eeg.Indicator, error)
}

// denominatorEpsilon is the near-zero floor for band-power ratios.
// Denominators below it produce a neutral (0, 0) indicator instead of
// a blown-up ratio.
const denominatorEpsilon = 1e-12

// rampNormalize maps a ratio onto [0, 100] with a linear ramp between
// the two calibration thresholds.
func rampNormalize(ratio, low, high float64) float64 {
	switch {
	case ratio <= low:
		return 0
	case ratio >= high:
		return 100
	default:
		return (ratio - low) / (high - low) * 100
	}
}

// validateThresholds rejects inverted or collapsed calibration ramps.
func validateThresholds(low, high float64, name string) error {
	if low >= high {
		return eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("%s thresholds inverted: low %g must be below high %g", name, low, high), nil)
	}
	return nil
}

// subset extracts the rows at idx from a channel-major window.
func subset(window [][]float64, idx []int) ([][]float64, error) {
	out := make([][]float64, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(window) {
			return nil, eeg.NewError(eeg.ErrCodeShape,
				fmt.Sprintf("window has %d channels, classifier expects row %d", len(window), i), nil)
		}
		out = append(out, window[i])
	}
	return out, nil
}
