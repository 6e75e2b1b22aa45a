package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindPeaksSimple(t *testing.T) {
	x := []float64{0, 3, 0, 0, 5, 0, 1}
	assert.Equal(t, []int{1, 4}, FindPeaks(x, 0, 1))
}

func TestFindPeaksHeightBoundary(t *testing.T) {
	const threshold = 75.0

	atThreshold := []float64{0, threshold, 0}
	assert.Equal(t, []int{1}, FindPeaks(atThreshold, threshold, 1),
		"peak exactly at threshold must be accepted")

	belowThreshold := []float64{0, threshold - 1e-9, 0}
	assert.Empty(t, FindPeaks(belowThreshold, threshold, 1),
		"peak below threshold must be rejected")
}

func TestFindPeaksRefractoryDistance(t *testing.T) {
	x := make([]float64, 200)
	x[50] = 10
	x[100] = 20

	// Within the refractory distance only the taller peak survives.
	assert.Equal(t, []int{100}, FindPeaks(x, 1, 60))

	// Outside the refractory distance both survive.
	assert.Equal(t, []int{50, 100}, FindPeaks(x, 1, 50))
}

func TestFindPeaksPlateau(t *testing.T) {
	x := []float64{0, 1, 5, 5, 5, 1, 0}
	assert.Equal(t, []int{3}, FindPeaks(x, 0, 1))
}

func TestFindPeaksEdgesNotPeaks(t *testing.T) {
	// Monotonic run-ups at the boundaries are not local maxima.
	assert.Empty(t, FindPeaks([]float64{5, 1, 1, 1, 5}, 0, 1))
	assert.Empty(t, FindPeaks([]float64{}, 0, 1))
	assert.Empty(t, FindPeaks([]float64{1, 2}, 0, 1))
}

func TestFindPeaksFlatSignal(t *testing.T) {
	assert.Empty(t, FindPeaks(make([]float64, 500), 0.5, 10))
}
