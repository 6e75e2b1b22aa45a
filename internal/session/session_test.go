package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

// capturePublisher records every published result.
type capturePublisher struct {
	mu      sync.Mutex
	results []*eeg.AnalysisResult
	notify  chan *eeg.AnalysisResult
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{notify: make(chan *eeg.AnalysisResult, 16)}
}

func (c *capturePublisher) Name() string { return "capture" }

func (c *capturePublisher) Publish(ctx context.Context, result *eeg.AnalysisResult) error {
	c.mu.Lock()
	c.results = append(c.results, result)
	c.mu.Unlock()
	c.notify <- result
	return nil
}

func newTestSession(t *testing.T, publishers ...Publisher) *Session {
	t.Helper()
	s, err := New(DefaultConfig(), nil, nil, publishers...)
	require.NoError(t, err)
	return s
}

// zeroPacket encodes one second of all-zero 4-channel data.
func zeroPacket(samples int) []byte {
	window := make([][]float64, 4)
	for c := range window {
		window[c] = make([]float64, samples)
	}
	return EncodePacket(window)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sampling rate", func(c *Config) { c.SamplingRate = 0 }},
		{"no channels", func(c *Config) { c.ChannelNames = nil }},
		{"channel count mismatch", func(c *Config) { c.ChannelCount = 8 }},
		{"blink window exceeds buffer", func(c *Config) { c.BlinkWindow = 10 * time.Second }},
		{"interval not below blink window", func(c *Config) { c.AnalysisInterval = 3 * time.Second }},
		{"negative queue", func(c *Config) { c.IngestQueueSize = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, nil, nil)
			require.Error(t, err)
			assert.True(t, eeg.IsCode(err, eeg.ErrCodeBadConfig))
		})
	}
}

func TestUnknownClassifierChannelFailsFast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stress.Channels = []string{"F7", "F8"}

	_, err := New(cfg, nil, nil)
	require.Error(t, err)
	assert.True(t, eeg.IsCode(err, eeg.ErrCodeUnknownChannel))
}

func TestDecodePacketLayout(t *testing.T) {
	window := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	decoded, err := DecodePacket(EncodePacket(window), 2)
	require.NoError(t, err)
	assert.Equal(t, window, decoded)
}

func TestDecodePacketMalformed(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		channels int
	}{
		{"empty", nil, 4},
		{"not float64 aligned", make([]byte, 37), 4},
		{"not divisible by channels", make([]byte, 5*8), 4},
		{"non-finite value", EncodePacket([][]float64{{1}, {nan()}, {3}, {4}}), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePacket(tt.data, tt.channels)
			require.Error(t, err)
			assert.True(t, eeg.IsCode(err, eeg.ErrCodeBadPacket))
		})
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

// A packet whose byte length is not a multiple of channel_count * 8 is
// discarded without throwing and leaves the buffer untouched.
func TestMalformedPacketResilience(t *testing.T) {
	s := newTestSession(t)

	s.onPacket(make([]byte, 37))
	assert.Equal(t, 0, s.buf.Len())

	s.onPacket(make([]byte, 5*8))
	assert.Equal(t, 0, s.buf.Len())

	// A good packet afterwards is ingested normally.
	s.onPacket(zeroPacket(250))
	assert.Equal(t, 250, s.buf.Len())
}

// Spec scenario: 5 s of all-zero 4-channel data at 250 Hz in 250-sample
// packets. Analysis fires exactly once, after the 5th packet, and every
// indicator lands on its neutral value.
func TestEndToEndZeroSignal(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 4; i++ {
		s.onPacket(zeroPacket(250))
		assert.Empty(t, s.pending, "no analysis before the buffer is full (packet %d)", i+1)
	}

	s.onPacket(zeroPacket(250))
	require.Len(t, s.pending, 1, "analysis scheduled once the buffer is full")

	result := s.runAnalysis(<-s.pending)

	assert.False(t, result.IsBlinking)
	assert.Equal(t, eeg.Indicator{Percentage: 0.0, Ratio: 0.0}, result.Tiredness)
	assert.Equal(t, eeg.Indicator{Percentage: 0.0, Ratio: 0.0}, result.Stress)
	assert.Equal(t, 50.0, result.Attention.Percentage)
	assert.Greater(t, result.Timestamp, 0.0)
}

func TestAnalysisCadenceOncePerInterval(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 5; i++ {
		s.onPacket(zeroPacket(250))
	}
	require.Len(t, s.pending, 1)
	<-s.pending

	// Half an interval of new samples: no new analysis yet.
	s.onPacket(zeroPacket(125))
	assert.Empty(t, s.pending)

	// Completing the interval schedules the next pass.
	s.onPacket(zeroPacket(125))
	assert.Len(t, s.pending, 1)
}

func TestStaleSnapshotReplaced(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 5; i++ {
		s.onPacket(zeroPacket(250))
	}
	require.Len(t, s.pending, 1)

	// The analysis worker has not drained the snapshot; the next cycle
	// replaces it instead of queueing behind.
	s.onPacket(zeroPacket(250))
	assert.Len(t, s.pending, 1)
}

func TestRunPublishesCompleteResults(t *testing.T) {
	capture := newCapturePublisher()
	s := newTestSession(t, capture)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()

	for i := 0; i < 5; i++ {
		s.Enqueue(zeroPacket(250))
	}

	select {
	case result := <-capture.notify:
		assert.False(t, result.IsBlinking)
		assert.Equal(t, 50.0, result.Attention.Percentage)
	case <-time.After(5 * time.Second):
		t.Fatal("no result published")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop")
	}
}

// A publisher error is isolated: other sinks still receive the result.
func TestPublisherFailureIsolated(t *testing.T) {
	failing := publisherFunc(func(ctx context.Context, r *eeg.AnalysisResult) error {
		return eeg.NewError(eeg.ErrCodeBadConfig, "sink gone", nil)
	})
	capture := newCapturePublisher()
	s := newTestSession(t, failing, capture)

	s.publish(context.Background(), &eeg.AnalysisResult{})

	capture.mu.Lock()
	defer capture.mu.Unlock()
	assert.Len(t, capture.results, 1)
}

type publisherFunc func(ctx context.Context, result *eeg.AnalysisResult) error

func (f publisherFunc) Name() string { return "func" }

func (f publisherFunc) Publish(ctx context.Context, result *eeg.AnalysisResult) error {
	return f(ctx, result)
}
