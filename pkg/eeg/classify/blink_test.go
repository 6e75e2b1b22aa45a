package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

func newTestBlink(t *testing.T) *Blink {
	t.Helper()
	b, err := NewBlink(DefaultBlinkConfig(), testChannels(t), 250, nil)
	require.NoError(t, err)
	return b
}

func TestBlinkFlatWindowNoBlink(t *testing.T) {
	b := newTestBlink(t)

	got, err := b.Detect(zeroWindow(750), 250)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestBlinkLargeFrontalDeflection(t *testing.T) {
	b := newTestBlink(t)

	// A 300 µV 5 Hz frontal oscillation sits inside the blink band and
	// far above the 75 µV floor.
	window := toneWindow(750, 5, 250, 300, 0)
	got, err := b.Detect(window, 250)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestBlinkIgnoresNonTargetChannel(t *testing.T) {
	b := newTestBlink(t)

	// The same deflection on O2 must not trigger the Fp1 detector.
	window := toneWindow(750, 5, 250, 300, 3)
	got, err := b.Detect(window, 250)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestBlinkSubThresholdDeflection(t *testing.T) {
	b := newTestBlink(t)

	// Well below the 75 µV floor: in-band but too small.
	window := toneWindow(750, 5, 250, 20, 0)
	got, err := b.Detect(window, 250)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestBlinkWindowTooShort(t *testing.T) {
	b := newTestBlink(t)

	_, err := b.Detect(zeroWindow(250), 250)
	require.Error(t, err)
	assert.True(t, eeg.IsCode(err, eeg.ErrCodeWindowTooShort))
}

func TestBlinkUnknownChannelFailsFast(t *testing.T) {
	cfg := DefaultBlinkConfig()
	cfg.Channel = "Cz"

	_, err := NewBlink(cfg, testChannels(t), 250, nil)
	require.Error(t, err)
	assert.True(t, eeg.IsCode(err, eeg.ErrCodeUnknownChannel))
}
