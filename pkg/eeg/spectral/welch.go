// Package spectral implements the signal-analysis primitives of the
// pipeline: Welch power-spectral-density estimation, zero-phase FIR
// band-pass filtering with edge-margin discipline, and local-maxima
// peak detection.
package spectral

import (
	"math"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

// Estimator computes power spectral densities via Welch's method:
// overlapping Hamming-windowed segments, averaged periodogram.
type Estimator struct {
	sfreq  float64
	logger logging.Logger
}

// NewEstimator creates a PSD estimator for the given sampling rate.
func NewEstimator(sfreq float64, logger logging.Logger) (*Estimator, error) {
	if sfreq <= 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "sampling rate must be positive", nil)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Estimator{
		sfreq: sfreq,
		logger: logger.WithFields(logging.Fields{
			"component": "psd_estimator",
		}),
	}, nil
}

// PowerSpectralDensity estimates the one-sided PSD of a signal segment.
// Sub-window length is capped at min(2*sfreq, len(segment)) with 50%
// overlap. Power values are non-negative and finite: NaN/Inf bins are
// substituted with 0 and logged, never propagated.
func (e *Estimator) PowerSpectralDensity(segment []float64) (freqs, psd []float64, err error) {
	if len(segment) == 0 {
		return nil, nil, eeg.NewError(eeg.ErrCodeShape, "empty segment", nil)
	}

	nperseg := int(2 * e.sfreq)
	if nperseg > len(segment) {
		nperseg = len(segment)
	}
	step := nperseg - nperseg/2

	// Hamming coefficients and window power for density scaling.
	coeffs := make([]float64, nperseg)
	for i := range coeffs {
		coeffs[i] = 1
	}
	window.Hamming(coeffs)
	var windowPower float64
	for _, w := range coeffs {
		windowPower += w * w
	}
	scale := 1 / (e.sfreq * windowPower)

	bins := nperseg/2 + 1
	psd = make([]float64, bins)
	buf := make([]float64, nperseg)

	segments := 0
	for start := 0; start+nperseg <= len(segment); start += step {
		for i := 0; i < nperseg; i++ {
			buf[i] = segment[start+i] * coeffs[i]
		}
		spectrum := fft.FFTReal(buf)
		for k := 0; k < bins; k++ {
			re := real(spectrum[k])
			im := imag(spectrum[k])
			power := (re*re + im*im) * scale
			if k > 0 && !(nperseg%2 == 0 && k == bins-1) {
				power *= 2 // fold negative frequencies, excluding DC and Nyquist
			}
			psd[k] += power
		}
		segments++
	}

	for k := range psd {
		psd[k] /= float64(segments)
		if math.IsNaN(psd[k]) || math.IsInf(psd[k], 0) {
			e.logger.Warn("Non-finite PSD bin substituted with zero", logging.Fields{
				"bin":            k,
				"segment_length": len(segment),
			})
			psd[k] = 0
		}
	}

	freqs = make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * e.sfreq / float64(nperseg)
	}

	return freqs, psd, nil
}

// BandPower returns the mean PSD value over frequency bins falling in
// [band.Low, band.High). Returns 0 when no bins fall in range; callers
// must guard ratios against zero denominators.
func BandPower(freqs, psd []float64, band eeg.FrequencyBand) float64 {
	var sum float64
	var count int
	for i, f := range freqs {
		if i < len(psd) && band.Contains(f) {
			sum += psd[i]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// BandPowerMatrix averages the band power across all channels of a
// channel-major matrix, matching a per-channel PSD followed by a mean
// over channels and in-band bins.
func (e *Estimator) BandPowerMatrix(channels [][]float64, band eeg.FrequencyBand) (float64, error) {
	if len(channels) == 0 {
		return 0, eeg.NewError(eeg.ErrCodeShape, "empty channel matrix", nil)
	}
	var sum float64
	var count int
	for _, ch := range channels {
		freqs, psd, err := e.PowerSpectralDensity(ch)
		if err != nil {
			return 0, err
		}
		for i, f := range freqs {
			if band.Contains(f) {
				sum += psd[i]
				count++
			}
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}
