package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

func newTestStress(t *testing.T) *Stress {
	t.Helper()
	c, err := NewStress(DefaultStressConfig(), testChannels(t), 250, nil)
	require.NoError(t, err)
	return c
}

func TestStressZeroRatioGuard(t *testing.T) {
	c := newTestStress(t)

	got, err := c.Compute(zeroWindow(1250))
	require.NoError(t, err)
	assert.Equal(t, eeg.Indicator{Percentage: 0.0, Ratio: 0.0}, got)
}

func TestStressBetaDominantIsStressed(t *testing.T) {
	c := newTestStress(t)

	// Strong 25 Hz frontal activity drives beta/alpha far above the
	// stress threshold.
	window := toneWindow(1250, 25, 250, 30, 0, 1)
	got, err := c.Compute(window)
	require.NoError(t, err)

	assert.Equal(t, 100.0, got.Percentage)
	assert.Greater(t, got.Ratio, 1.5)
}

func TestStressAlphaDominantIsCalm(t *testing.T) {
	c := newTestStress(t)

	window := toneWindow(1250, 10, 250, 30, 0, 1)
	got, err := c.Compute(window)
	require.NoError(t, err)

	assert.Equal(t, 0.0, got.Percentage)
	assert.Less(t, got.Ratio, 0.5)
}

func TestStressIgnoresOccipitalChannels(t *testing.T) {
	c := newTestStress(t)

	window := toneWindow(1250, 25, 250, 30, 2, 3)
	got, err := c.Compute(window)
	require.NoError(t, err)
	assert.Equal(t, eeg.Indicator{}, got)
}

func TestStressUnknownChannelFailsFast(t *testing.T) {
	cfg := DefaultStressConfig()
	cfg.Channels = []string{"Fpz"}

	_, err := NewStress(cfg, testChannels(t), 250, nil)
	require.Error(t, err)
	assert.True(t, eeg.IsCode(err, eeg.ErrCodeUnknownChannel))
}

func TestStressInvertedThresholdsFailFast(t *testing.T) {
	cfg := DefaultStressConfig()
	cfg.CalmThreshold = 1.5
	cfg.StressThreshold = 0.5

	_, err := NewStress(cfg, testChannels(t), 250, nil)
	require.Error(t, err)
	assert.True(t, eeg.IsCode(err, eeg.ErrCodeBadConfig))
}
