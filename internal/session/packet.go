package session

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

const bytesPerValue = 8

// DecodePacket parses a flat little-endian float64 packet into a
// channel-major matrix. The layout is row-major by channel: channel 0's
// samples first, then channel 1's, and so on. Packets whose value count
// is not divisible by the channel count, or that carry non-finite
// values, are malformed.
func DecodePacket(data []byte, channels int) ([][]float64, error) {
	if channels <= 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "channel count must be positive", nil)
	}
	if len(data) == 0 || len(data)%bytesPerValue != 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadPacket,
			fmt.Sprintf("packet of %d bytes is not a float64 array", len(data)), nil)
	}

	values := len(data) / bytesPerValue
	if values%channels != 0 {
		return nil, eeg.NewError(eeg.ErrCodeBadPacket,
			fmt.Sprintf("%d values not divisible by %d channels", values, channels), nil)
	}

	samples := values / channels
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, samples)
		for i := 0; i < samples; i++ {
			offset := ((c*samples + i) * bytesPerValue)
			v := math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, eeg.NewError(eeg.ErrCodeBadPacket,
					fmt.Sprintf("non-finite value at channel %d sample %d", c, i), nil)
			}
			out[c][i] = v
		}
	}
	return out, nil
}

// EncodePacket flattens a channel-major matrix into the wire layout
// consumed by DecodePacket.
func EncodePacket(window [][]float64) []byte {
	if len(window) == 0 {
		return nil
	}
	samples := len(window[0])
	out := make([]byte, len(window)*samples*bytesPerValue)
	for c, row := range window {
		for i, v := range row {
			offset := ((c*samples + i) * bytesPerValue)
			binary.LittleEndian.PutUint64(out[offset:], math.Float64bits(v))
		}
	}
	return out
}
