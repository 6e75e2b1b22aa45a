// Package sim generates a synthetic multi-channel EEG stream for
// exercising the pipeline without a headset.
package sim

import "math"

// Config shapes the synthetic signal. Amplitudes are in microvolts.
type Config struct {
	SamplingRate   float64
	Channels       int
	AlphaHz        float64
	AlphaAmplitude float64
	ThetaHz        float64
	ThetaAmplitude float64
	NoiseAmplitude float64

	// BlinkInterval spaces artificial blink artifacts, in seconds.
	// Zero disables blinks.
	BlinkInterval  float64
	BlinkAmplitude float64
}

// DefaultConfig approximates a relaxed eyes-closed recording: strong
// occipital alpha, mild theta, a blink every couple of seconds.
func DefaultConfig() Config {
	return Config{
		SamplingRate:   250,
		Channels:       4,
		AlphaHz:        10,
		AlphaAmplitude: 20,
		ThetaHz:        6,
		ThetaAmplitude: 8,
		NoiseAmplitude: 3,
		BlinkInterval:  2.5,
		BlinkAmplitude: 150,
	}
}

// Generator produces samples one at a time. It is deterministic: the
// same configuration always yields the same stream.
type Generator struct {
	cfg Config
	t   float64
}

func New(cfg Config) *Generator {
	if cfg.SamplingRate <= 0 {
		cfg.SamplingRate = DefaultConfig().SamplingRate
	}
	if cfg.Channels <= 0 {
		cfg.Channels = DefaultConfig().Channels
	}
	return &Generator{cfg: cfg}
}

// Next returns one sample across all channels and advances time. The
// first half of the channels is treated as frontal and carries the
// blink artifact; the second half as occipital with doubled alpha.
func (g *Generator) Next() []float64 {
	c := g.cfg
	out := make([]float64, c.Channels)

	alpha := c.AlphaAmplitude * math.Sin(2*math.Pi*c.AlphaHz*g.t)
	theta := c.ThetaAmplitude * math.Sin(2*math.Pi*c.ThetaHz*g.t)
	blink := g.blinkAt(g.t)

	for ch := range out {
		// cheap deterministic noise, distinct per channel
		n := c.NoiseAmplitude * (2*fract(math.Sin((g.t+float64(ch))*12345.678)*9876.543) - 1)
		if ch < c.Channels/2 {
			out[ch] = 0.5*alpha + theta + blink + n
		} else {
			out[ch] = 2*alpha + theta + n
		}
	}

	g.t += 1.0 / c.SamplingRate
	return out
}

// Window fills a channel-major matrix with the next n samples.
func (g *Generator) Window(n int) [][]float64 {
	out := make([][]float64, g.cfg.Channels)
	for ch := range out {
		out[ch] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		sample := g.Next()
		for ch, v := range sample {
			out[ch][i] = v
		}
	}
	return out
}

// blinkAt shapes each blink as a gaussian bump around the interval
// midpoints, roughly 100 ms wide like a real eyelid artifact.
func (g *Generator) blinkAt(t float64) float64 {
	if g.cfg.BlinkInterval <= 0 || g.cfg.BlinkAmplitude == 0 {
		return 0
	}
	phase := math.Mod(t, g.cfg.BlinkInterval)
	return g.cfg.BlinkAmplitude * gauss(phase, g.cfg.BlinkInterval/2, 0.05)
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

func fract(x float64) float64 { return x - math.Floor(x) }
