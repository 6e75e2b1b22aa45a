package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := New(DefaultConfig())
	b := New(DefaultConfig())

	for i := 0; i < 500; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestWindowShape(t *testing.T) {
	g := New(DefaultConfig())
	w := g.Window(250)

	require.Len(t, w, 4)
	for _, row := range w {
		assert.Len(t, row, 250)
	}
}

func TestOccipitalAlphaDominates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlinkInterval = 0
	cfg.NoiseAmplitude = 0
	g := New(cfg)

	w := g.Window(1250)
	assert.Greater(t, rms(w[2]), rms(w[0]),
		"occipital channels should carry more alpha power than frontal")
}

func TestBlinkSpikesOnFrontalOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AlphaAmplitude = 0
	cfg.ThetaAmplitude = 0
	cfg.NoiseAmplitude = 0
	g := New(cfg)

	w := g.Window(1250)
	assert.Greater(t, peak(w[0]), 100.0)
	assert.Less(t, peak(w[3]), 1.0)
}

func TestAllValuesFinite(t *testing.T) {
	g := New(DefaultConfig())
	for i := 0; i < 2500; i++ {
		for _, v := range g.Next() {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func peak(x []float64) float64 {
	var m float64
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
