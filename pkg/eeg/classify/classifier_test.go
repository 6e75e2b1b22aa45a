package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

func testChannels(t *testing.T) *eeg.ChannelSet {
	t.Helper()
	cs, err := eeg.NewChannelSet("Fp1", "Fp2", "O1", "O2")
	require.NoError(t, err)
	return cs
}

// zeroWindow returns a 4-channel all-zero window.
func zeroWindow(samples int) [][]float64 {
	out := make([][]float64, 4)
	for c := range out {
		out[c] = make([]float64, samples)
	}
	return out
}

// toneWindow returns a 4-channel window with a sine of the given
// frequency on the listed rows and zeros elsewhere.
func toneWindow(samples int, freq, sfreq, amplitude float64, rows ...int) [][]float64 {
	out := zeroWindow(samples)
	for _, r := range rows {
		for i := range out[r] {
			out[r][i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sfreq)
		}
	}
	return out
}

func TestRampNormalizeBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{"far below low", -5, 0},
		{"at low", 1.0, 0},
		{"halfway", 2.0, 50},
		{"at high", 3.0, 100},
		{"above high", 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, rampNormalize(tt.ratio, 1.0, 3.0), 1e-9)
		})
	}
}

func TestRampNormalizeMonotonic(t *testing.T) {
	prev := -1.0
	for ratio := 0.0; ratio <= 4.0; ratio += 0.01 {
		pct := rampNormalize(ratio, 1.0, 3.0)
		assert.GreaterOrEqual(t, pct, prev, "ratio %g", ratio)
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
		prev = pct
	}
}

func TestRampNormalizeLinearSegment(t *testing.T) {
	// Inside the ramp the mapping is exactly linear.
	assert.InDelta(t, 25.0, rampNormalize(0.75, 0.5, 1.5), 1e-9)
	assert.InDelta(t, 75.0, rampNormalize(1.25, 0.5, 1.5), 1e-9)
}

func TestAttentionStub(t *testing.T) {
	a := NewAttention()
	assert.Equal(t, "attention", a.Name())

	// The placeholder ignores its input entirely.
	for _, window := range [][][]float64{
		zeroWindow(1250),
		toneWindow(1250, 10, 250, 40, 0, 1, 2, 3),
		nil,
	} {
		got, err := a.Compute(window)
		require.NoError(t, err)
		assert.Equal(t, eeg.Indicator{Percentage: 50.0, Ratio: 0.0}, got)
	}
}
