package eeg

import "fmt"

// Sample is an instant-in-time vector of channel voltages in microvolts.
// Immutable once produced; index order matches the session's ChannelSet.
type Sample []float64

// FrequencyBand is an inclusive-exclusive frequency range [Low, High) in Hz.
type FrequencyBand struct {
	Name string  `json:"name"`
	Low  float64 `json:"low_hz"`
	High float64 `json:"high_hz"`
}

// Standard EEG band boundaries.
var (
	Delta = FrequencyBand{Name: "delta", Low: 1.0, High: 4.0}
	Theta = FrequencyBand{Name: "theta", Low: 4.0, High: 8.0}
	Alpha = FrequencyBand{Name: "alpha", Low: 8.0, High: 13.0}
	Beta  = FrequencyBand{Name: "beta", Low: 13.0, High: 30.0}
	Gamma = FrequencyBand{Name: "gamma", Low: 30.0, High: 50.0}
)

// Contains reports whether the frequency falls inside the band.
func (b FrequencyBand) Contains(hz float64) bool {
	return hz >= b.Low && hz < b.High
}

func (b FrequencyBand) String() string {
	return fmt.Sprintf("%s [%.1f, %.1f) Hz", b.Name, b.Low, b.High)
}

// ChannelSet is a named, ordered set of channel labels. The ordering
// defines the row layout of every channel-major matrix in the pipeline.
type ChannelSet struct {
	names []string
	index map[string]int
}

// NewChannelSet builds a channel set from ordered labels. Duplicate or
// empty labels are a configuration error.
func NewChannelSet(names ...string) (*ChannelSet, error) {
	if len(names) == 0 {
		return nil, NewError(ErrCodeBadConfig, "channel set requires at least one channel", nil)
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, NewError(ErrCodeBadConfig, fmt.Sprintf("empty channel name at position %d", i), nil)
		}
		if _, dup := index[name]; dup {
			return nil, NewError(ErrCodeBadConfig, fmt.Sprintf("duplicate channel name %q", name), nil)
		}
		index[name] = i
	}
	return &ChannelSet{names: append([]string(nil), names...), index: index}, nil
}

// Len returns the number of channels.
func (cs *ChannelSet) Len() int {
	return len(cs.names)
}

// Names returns the ordered channel labels.
func (cs *ChannelSet) Names() []string {
	return append([]string(nil), cs.names...)
}

// Index returns the row index for a channel label.
func (cs *ChannelSet) Index(name string) (int, bool) {
	i, ok := cs.index[name]
	return i, ok
}

// Pick resolves a subset of channel labels to row indices. An unknown
// label is a configuration error and fails fast.
func (cs *ChannelSet) Pick(names ...string) ([]int, error) {
	indices := make([]int, 0, len(names))
	for _, name := range names {
		i, ok := cs.index[name]
		if !ok {
			return nil, NewError(ErrCodeUnknownChannel,
				fmt.Sprintf("channel %q not in configured set %v", name, cs.names), nil)
		}
		indices = append(indices, i)
	}
	return indices, nil
}

// Indicator is a normalized cognitive-state reading. Percentage is
// clamped to [0, 100]; Ratio is the raw band-power ratio kept for
// diagnostics.
type Indicator struct {
	Percentage float64 `json:"percentage"`
	Ratio      float64 `json:"ratio"`
}

// AttentionReading carries only a percentage; the attention classifier
// has no meaningful ratio yet.
type AttentionReading struct {
	Percentage float64 `json:"percentage"`
}

// AnalysisResult is the record produced once per analysis cycle and
// handed to the publish sinks. It is never retained by the pipeline.
type AnalysisResult struct {
	Timestamp  float64          `json:"timestamp"`
	IsBlinking bool             `json:"is_blinking"`
	Tiredness  Indicator        `json:"tiredness"`
	Stress     Indicator        `json:"stress"`
	Attention  AttentionReading `json:"attention"`
}
