package classify

import "github.com/brainflux/eeg-stream/pkg/eeg"

// Attention is a placeholder classifier: it always reports 50% with a
// zero ratio. A real implementation might score Beta / (Alpha + Theta);
// it shares the Classifier contract so it can be swapped in without
// touching the session.
type Attention struct{}

// NewAttention creates the placeholder attention classifier.
func NewAttention() *Attention {
	return &Attention{}
}

func (a *Attention) Name() string {
	return "attention"
}

// Compute returns the placeholder value regardless of input.
func (a *Attention) Compute(window [][]float64) (eeg.Indicator, error) {
	return eeg.Indicator{Percentage: 50.0, Ratio: 0.0}, nil
}
