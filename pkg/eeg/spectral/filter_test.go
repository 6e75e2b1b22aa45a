package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

func constantWindow(channels, samples int, v float64) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, samples)
		for i := range out[c] {
			out[c][i] = v
		}
	}
	return out
}

// A band that includes 0 Hz must reproduce a constant signal in the
// centered output: the low-pass branch is normalized to unity DC gain.
func TestFilterCenteredPreservesDC(t *testing.T) {
	const v = 3.7
	win := constantWindow(4, 750, v)

	out, err := FilterCentered(win, 0, 10, 250, 250)
	require.NoError(t, err)
	require.Len(t, out, 4)
	require.Len(t, out[0], 250)

	for c := range out {
		for i, got := range out[c] {
			assert.InDelta(t, v, got, 1e-9, "channel %d sample %d", c, i)
		}
	}
}

func TestFilterCenteredMargin(t *testing.T) {
	// 750-sample window keeping 250 centered samples: margin is 250,
	// so the kept segment is samples [250, 500) of the filtered window.
	win := make([][]float64, 1)
	win[0] = make([]float64, 750)
	for i := range win[0] {
		win[0][i] = float64(i)
	}

	out, err := FilterCentered(win, 0, 10, 250, 250)
	require.NoError(t, err)
	require.Len(t, out[0], 250)

	// A ramp is DC-dominated; the center of the kept segment should sit
	// near the value of input sample 250+125.
	assert.InDelta(t, win[0][375], out[0][125], 1.0)
}

func TestFilterCenteredWindowTooShort(t *testing.T) {
	win := constantWindow(4, 250, 1)

	for _, keep := range []int{250, 300} {
		_, err := FilterCentered(win, 1, 10, 250, keep)
		require.Error(t, err, "keep=%d", keep)
		assert.True(t, eeg.IsCode(err, eeg.ErrCodeWindowTooShort), "keep=%d", keep)
	}
}

func TestFilterCenteredRaggedWindow(t *testing.T) {
	win := [][]float64{make([]float64, 750), make([]float64, 600)}
	_, err := FilterCentered(win, 1, 10, 250, 250)
	require.Error(t, err)
	assert.True(t, eeg.IsCode(err, eeg.ErrCodeShape))
}

func TestBandPassRejectsOutOfBandTone(t *testing.T) {
	// A 2 Hz tone pushed through an 8-13 Hz band-pass should be heavily
	// attenuated while a 10 Hz tone passes near unity.
	const sfreq = 250.0
	low := [][]float64{sine(2, sfreq, 1500)}
	mid := [][]float64{sine(10, sfreq, 1500)}

	outLow, err := FilterCentered(low, 8, 13, sfreq, 500)
	require.NoError(t, err)
	outMid, err := FilterCentered(mid, 8, 13, sfreq, 500)
	require.NoError(t, err)

	assert.Less(t, maxAbs(outLow[0]), 0.1)
	assert.InDelta(t, 1.0, maxAbs(outMid[0]), 0.2)
}

func TestNewBandPassValidation(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
		sfreq     float64
	}{
		{"inverted band", 10, 2, 250},
		{"empty band", 10, 10, 250},
		{"above nyquist", 10, 200, 250},
		{"zero rate", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBandPass(tt.low, tt.high, tt.sfreq, 251)
			require.Error(t, err)
			assert.True(t, eeg.IsCode(err, eeg.ErrCodeBadConfig))
		})
	}
}

func TestNewBandPassForcesOddTaps(t *testing.T) {
	f, err := NewBandPass(1, 10, 250, 250)
	require.NoError(t, err)
	assert.Equal(t, 251, f.Len())
}

func maxAbs(x []float64) float64 {
	var m float64
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
