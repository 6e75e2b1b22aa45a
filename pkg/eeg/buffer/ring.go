// Package buffer provides the fixed-capacity rolling sample store that
// backs a streaming session. It keeps the most recent N samples of
// multichannel data with O(1) push and FIFO eviction.
package buffer

import (
	"fmt"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

// Ring stores the trailing window of multichannel samples. It is not
// safe for concurrent use: all mutation happens on the single ingest
// path, and analysis only ever reads Snapshot copies.
type Ring struct {
	channels int
	capacity int
	data     []float64 // capacity * channels, sample-major
	position int       // next write slot
	count    int
}

// New creates a ring holding up to capacity samples of the given width.
func New(channels, capacity int) (*Ring, error) {
	if channels <= 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("channel count must be positive, got %d", channels), nil)
	}
	if capacity <= 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("buffer capacity must be positive, got %d", capacity), nil)
	}
	return &Ring{
		channels: channels,
		capacity: capacity,
		data:     make([]float64, capacity*channels),
	}, nil
}

// Push appends one sample, evicting the oldest when full. A sample of
// the wrong width is a caller contract violation.
func (r *Ring) Push(sample eeg.Sample) error {
	if len(sample) != r.channels {
		return eeg.NewError(eeg.ErrCodeShape,
			fmt.Sprintf("sample has %d channels, buffer expects %d", len(sample), r.channels), nil)
	}
	copy(r.data[r.position*r.channels:], sample)
	r.position = (r.position + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	}
	return nil
}

// Len returns the number of samples currently stored.
func (r *Ring) Len() int {
	return r.count
}

// Capacity returns the maximum number of samples the ring can hold.
func (r *Ring) Capacity() int {
	return r.capacity
}

// Channels returns the configured sample width.
func (r *Ring) Channels() int {
	return r.channels
}

// IsFull reports whether capacity samples have been pushed since the
// last reset.
func (r *Ring) IsFull() bool {
	return r.count == r.capacity
}

// Reset discards all stored samples.
func (r *Ring) Reset() {
	r.position = 0
	r.count = 0
}

// Snapshot returns a channel-major copy of the current contents ordered
// oldest to newest. Downstream analysis must never observe buffer
// mutations mid-computation, so the copy is mandatory.
func (r *Ring) Snapshot() [][]float64 {
	out := make([][]float64, r.channels)
	for c := range out {
		out[c] = make([]float64, r.count)
	}
	start := r.position - r.count
	if start < 0 {
		start += r.capacity
	}
	for i := 0; i < r.count; i++ {
		slot := (start + i) % r.capacity
		base := slot * r.channels
		for c := 0; c < r.channels; c++ {
			out[c][i] = r.data[base+c]
		}
	}
	return out
}
