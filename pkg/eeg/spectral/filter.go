package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/window"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

// FIRFilter is a linear-phase windowed-sinc band-pass filter applied
// with group-delay compensation, giving a zero-phase response over the
// interior of the window. Output samples within (taps-1)/2 of either
// edge carry start/end transients; callers discard them via
// FilterCentered margins.
type FIRFilter struct {
	taps  []float64
	delay int
}

// NewBandPass designs a firwin-style band-pass filter with Hamming
// taps. A band whose low edge reaches 0 Hz degrades to a low-pass with
// unity DC gain, so constant signals pass through unchanged.
func NewBandPass(lowHz, highHz, sfreq float64, numtaps int) (*FIRFilter, error) {
	if sfreq <= 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "sampling rate must be positive", nil)
	}
	if lowHz < 0 {
		lowHz = 0
	}
	if highHz <= lowHz {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("invalid band [%g, %g) Hz", lowHz, highHz), nil)
	}
	if highHz > sfreq/2 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("band edge %g Hz exceeds Nyquist %g Hz", highHz, sfreq/2), nil)
	}
	if numtaps < 3 {
		numtaps = 3
	}
	if numtaps%2 == 0 {
		numtaps++
	}

	mid := (numtaps - 1) / 2
	fl := lowHz / sfreq
	fh := highHz / sfreq

	taps := make([]float64, numtaps)
	for n := range taps {
		x := float64(n - mid)
		if fl > 0 {
			taps[n] = 2*fh*sinc(2*fh*x) - 2*fl*sinc(2*fl*x)
		} else {
			taps[n] = 2 * fh * sinc(2*fh*x)
		}
	}
	window.Hamming(taps)

	// firwin scaling: unity gain at DC for a low-pass, at the band
	// center for a band-pass.
	var gain float64
	if fl > 0 {
		fc := (fl + fh) / 2
		for n := range taps {
			gain += taps[n] * math.Cos(2*math.Pi*fc*float64(n-mid))
		}
	} else {
		for n := range taps {
			gain += taps[n]
		}
	}
	if gain == 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("degenerate filter design for band [%g, %g) Hz with %d taps", lowHz, highHz, numtaps), nil)
	}
	for n := range taps {
		taps[n] /= gain
	}

	return &FIRFilter{taps: taps, delay: mid}, nil
}

// Len returns the number of filter taps.
func (f *FIRFilter) Len() int {
	return len(f.taps)
}

// Apply convolves the signal with the filter taps, compensating the
// group delay so output sample i aligns with input sample i. The input
// is treated as zero-padded beyond its edges.
func (f *FIRFilter) Apply(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		var acc float64
		for k, h := range f.taps {
			j := i + k - f.delay
			if j >= 0 && j < len(x) {
				acc += h * x[j]
			}
		}
		out[i] = acc
	}
	return out
}

// FilterCentered band-passes an oversized channel-major window and
// returns only the temporally centered keep samples of every channel.
// Filtering a short analysis window directly rings at the edges; the
// oversized window absorbs the transients and the margins are thrown
// away.
func FilterCentered(win [][]float64, lowHz, highHz, sfreq float64, keep int) ([][]float64, error) {
	if len(win) == 0 {
		return nil, eeg.NewError(eeg.ErrCodeShape, "empty window", nil)
	}
	width := len(win[0])
	for c, row := range win {
		if len(row) != width {
			return nil, eeg.NewError(eeg.ErrCodeShape,
				fmt.Sprintf("ragged window: channel %d has %d samples, channel 0 has %d", c, len(row), width), nil)
		}
	}
	if keep <= 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("keep samples must be positive, got %d", keep), nil)
	}
	if keep >= width {
		return nil, eeg.NewError(eeg.ErrCodeWindowTooShort,
			fmt.Sprintf("window of %d samples cannot center %d samples", width, keep), nil)
	}

	margin := (width - keep) / 2

	// Cap the tap count so the transient region stays inside the
	// discarded margin.
	numtaps := int(sfreq) | 1
	if numtaps > 2*margin+1 {
		numtaps = 2*margin + 1
	}
	filter, err := NewBandPass(lowHz, highHz, sfreq, numtaps)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(win))
	for c, row := range win {
		filtered := filter.Apply(row)
		centered := make([]float64, keep)
		copy(centered, filtered[margin:margin+keep])
		out[c] = centered
	}
	return out, nil
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}
