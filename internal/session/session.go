// Package session wires the rolling buffer, the classifiers, and the
// publish sinks into one long-lived streaming session. It implements a
// two-stage pipeline: a bounded ingest queue fed by the network
// receiver, and an analysis worker operating on snapshot copies, so
// the receive path never blocks on spectral computation or on slow
// subscribers.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/brainflux/eeg-stream/internal/metrics"
	"github.com/brainflux/eeg-stream/pkg/eeg"
	"github.com/brainflux/eeg-stream/pkg/eeg/buffer"
	"github.com/brainflux/eeg-stream/pkg/eeg/classify"
)

// Config holds the construction-time settings of one session. Nothing
// here is runtime-mutable.
type Config struct {
	SamplingRate     int           `mapstructure:"sampling_rate" yaml:"sampling_rate"`
	ChannelCount     int           `mapstructure:"channel_count" yaml:"channel_count"`
	ChannelNames     []string      `mapstructure:"channel_names" yaml:"channel_names"`
	BufferDuration   time.Duration `mapstructure:"buffer_duration" yaml:"buffer_duration"`
	AnalysisInterval time.Duration `mapstructure:"analysis_interval" yaml:"analysis_interval"`
	BlinkWindow      time.Duration `mapstructure:"blink_window" yaml:"blink_window"`
	TirednessWindow  time.Duration `mapstructure:"tiredness_window" yaml:"tiredness_window"`
	StressWindow     time.Duration `mapstructure:"stress_window" yaml:"stress_window"`
	IngestQueueSize  int           `mapstructure:"ingest_queue_size" yaml:"ingest_queue_size"`

	Blink     classify.BlinkConfig     `mapstructure:"blink" yaml:"blink"`
	Tiredness classify.TirednessConfig `mapstructure:"tiredness" yaml:"tiredness"`
	Stress    classify.StressConfig    `mapstructure:"stress" yaml:"stress"`
}

// DefaultConfig returns the BrainAccess Halo 4-channel defaults.
func DefaultConfig() Config {
	return Config{
		SamplingRate:     250,
		ChannelCount:     4,
		ChannelNames:     []string{"Fp1", "Fp2", "O1", "O2"},
		BufferDuration:   5 * time.Second,
		AnalysisInterval: time.Second,
		BlinkWindow:      3 * time.Second,
		TirednessWindow:  5 * time.Second,
		StressWindow:     5 * time.Second,
		IngestQueueSize:  32,
		Blink:            classify.DefaultBlinkConfig(),
		Tiredness:        classify.DefaultTirednessConfig(),
		Stress:           classify.DefaultStressConfig(),
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.SamplingRate <= 0 {
		return eeg.NewError(eeg.ErrCodeBadConfig, "sampling rate must be positive", nil)
	}
	if len(c.ChannelNames) == 0 {
		return eeg.NewError(eeg.ErrCodeBadConfig, "at least one channel name is required", nil)
	}
	if c.ChannelCount != 0 && c.ChannelCount != len(c.ChannelNames) {
		return eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("channel_count %d does not match %d channel names", c.ChannelCount, len(c.ChannelNames)), nil)
	}
	if c.BufferDuration <= 0 || c.AnalysisInterval <= 0 {
		return eeg.NewError(eeg.ErrCodeBadConfig, "buffer duration and analysis interval must be positive", nil)
	}
	for name, window := range map[string]time.Duration{
		"blink":     c.BlinkWindow,
		"tiredness": c.TirednessWindow,
		"stress":    c.StressWindow,
	} {
		if window <= 0 {
			return eeg.NewError(eeg.ErrCodeBadConfig,
				fmt.Sprintf("%s window must be positive", name), nil)
		}
		if window > c.BufferDuration {
			return eeg.NewError(eeg.ErrCodeBadConfig,
				fmt.Sprintf("%s window %s exceeds buffer duration %s", name, window, c.BufferDuration), nil)
		}
	}
	if c.AnalysisInterval >= c.BlinkWindow {
		return eeg.NewError(eeg.ErrCodeBadConfig,
			fmt.Sprintf("analysis interval %s must be shorter than the blink window %s for edge margins",
				c.AnalysisInterval, c.BlinkWindow), nil)
	}
	if c.IngestQueueSize < 0 {
		return eeg.NewError(eeg.ErrCodeBadConfig, "ingest queue size must be non-negative", nil)
	}
	return nil
}

func (c *Config) samples(d time.Duration) int {
	return int(d.Seconds() * float64(c.SamplingRate))
}

// Session owns the rolling buffer and orchestrates analysis over one
// long-lived stream. The buffer is exclusively mutated by the ingest
// loop; analysis reads snapshot copies only.
type Session struct {
	cfg      Config
	channels *eeg.ChannelSet
	buf      *buffer.Ring

	blink     *classify.Blink
	tiredness classify.Classifier
	stress    classify.Classifier
	attention classify.Classifier

	publishers []Publisher
	pipeline   *metrics.Pipeline
	logger     logging.Logger

	ingest  chan []byte
	pending chan [][]float64

	analysisSamples  int
	blinkSamples     int
	tirednessSamples int
	stressSamples    int
	sinceAnalysis    int
}

// New builds a session and fails fast on any configuration error.
func New(cfg Config, logger logging.Logger, pipeline *metrics.Pipeline, publishers ...Publisher) (*Session, error) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if pipeline == nil {
		pipeline = metrics.NewPipeline()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.IngestQueueSize == 0 {
		cfg.IngestQueueSize = DefaultConfig().IngestQueueSize
	}

	channels, err := eeg.NewChannelSet(cfg.ChannelNames...)
	if err != nil {
		return nil, err
	}

	buf, err := buffer.New(channels.Len(), cfg.samples(cfg.BufferDuration))
	if err != nil {
		return nil, err
	}

	sfreq := float64(cfg.SamplingRate)
	blink, err := classify.NewBlink(cfg.Blink, channels, sfreq, logger)
	if err != nil {
		return nil, err
	}
	tiredness, err := classify.NewTiredness(cfg.Tiredness, channels, sfreq, logger)
	if err != nil {
		return nil, err
	}
	stress, err := classify.NewStress(cfg.Stress, channels, sfreq, logger)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:        cfg,
		channels:   channels,
		buf:        buf,
		blink:      blink,
		tiredness:  tiredness,
		stress:     stress,
		attention:  classify.NewAttention(),
		publishers: publishers,
		pipeline:   pipeline,
		logger: logger.WithFields(logging.Fields{
			"component":     "session",
			"sampling_rate": cfg.SamplingRate,
			"channels":      cfg.ChannelNames,
		}),
		ingest:           make(chan []byte, cfg.IngestQueueSize),
		pending:          make(chan [][]float64, 1),
		analysisSamples:  cfg.samples(cfg.AnalysisInterval),
		blinkSamples:     cfg.samples(cfg.BlinkWindow),
		tirednessSamples: cfg.samples(cfg.TirednessWindow),
		stressSamples:    cfg.samples(cfg.StressWindow),
	}

	s.logger.Debug("Session initialized", logging.Fields{
		"buffer_samples":   buf.Capacity(),
		"analysis_samples": s.analysisSamples,
		"publishers":       len(publishers),
	})

	return s, nil
}

// Channels returns the session's configured channel set.
func (s *Session) Channels() *eeg.ChannelSet {
	return s.channels
}

// Enqueue hands a raw packet to the ingest queue without blocking. When
// the queue is full the oldest queued packet is dropped: the buffer
// only retains a fixed trailing window anyway, so losing a stale packet
// is equivalent to faster eviction.
func (s *Session) Enqueue(packet []byte) {
	for {
		select {
		case s.ingest <- packet:
			return
		default:
		}
		select {
		case <-s.ingest:
			s.pipeline.PacketsDropped.Inc()
		default:
		}
	}
}

// Run drives the two pipeline stages until the context is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Debug("Session starting")

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.analysisLoop(ctx)
	}()

	s.ingestLoop(ctx)
	close(s.pending)
	<-done

	s.logger.Debug("Session stopped")
	return nil
}

func (s *Session) ingestLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case packet := <-s.ingest:
			s.onPacket(packet)
		}
	}
}

// onPacket decodes and buffers one packet, scheduling an analysis pass
// once a full analysis interval of new samples has accumulated in a
// full buffer. Malformed packets are logged and discarded; the session
// continues.
func (s *Session) onPacket(packet []byte) {
	s.pipeline.PacketsReceived.Inc()

	cols, err := DecodePacket(packet, s.channels.Len())
	if err != nil {
		s.pipeline.PacketsMalformed.Inc()
		s.logger.Warn("Discarding malformed packet", logging.Fields{
			"bytes": len(packet),
			"error": err.Error(),
		})
		return
	}

	samples := len(cols[0])
	sample := make(eeg.Sample, s.channels.Len())
	for i := 0; i < samples; i++ {
		for c := range sample {
			sample[c] = cols[c][i]
		}
		if err := s.buf.Push(sample); err != nil {
			s.logger.Error(err, "Buffer rejected sample")
			return
		}
	}
	s.pipeline.SamplesIngested.Add(float64(samples))

	s.sinceAnalysis += samples
	if s.buf.IsFull() && s.sinceAnalysis >= s.analysisSamples {
		s.sinceAnalysis = 0
		s.scheduleAnalysis(s.buf.Snapshot())
	}
}

// scheduleAnalysis hands a snapshot to the analysis worker. A stale
// pending snapshot is replaced rather than queued behind: results are
// only useful fresh.
func (s *Session) scheduleAnalysis(snapshot [][]float64) {
	for {
		select {
		case s.pending <- snapshot:
			return
		default:
		}
		select {
		case <-s.pending:
			s.pipeline.AnalysesDropped.Inc()
		default:
		}
	}
}

func (s *Session) analysisLoop(ctx context.Context) {
	for snapshot := range s.pending {
		result := s.runAnalysis(snapshot)
		s.publish(ctx, result)
	}
}

// runAnalysis computes every indicator over one snapshot. A failing
// classifier is substituted with its documented safe default so one
// broken indicator never blocks the others; the sink always receives a
// complete result.
func (s *Session) runAnalysis(snapshot [][]float64) *eeg.AnalysisResult {
	started := time.Now()

	result := &eeg.AnalysisResult{
		Timestamp: float64(started.UnixNano()) / 1e9,
	}

	blinking, err := s.blink.Detect(tail(snapshot, s.blinkSamples), s.analysisSamples)
	if err != nil {
		s.indicatorFailed("blink", err)
	} else {
		result.IsBlinking = blinking
	}

	if tiredness, err := s.tiredness.Compute(tail(snapshot, s.tirednessSamples)); err != nil {
		s.indicatorFailed("tiredness", err)
	} else {
		result.Tiredness = tiredness
	}

	if stress, err := s.stress.Compute(tail(snapshot, s.stressSamples)); err != nil {
		s.indicatorFailed("stress", err)
	} else {
		result.Stress = stress
	}

	attention, err := s.attention.Compute(snapshot)
	if err != nil {
		s.indicatorFailed("attention", err)
		attention = eeg.Indicator{Percentage: 50.0}
	}
	result.Attention = eeg.AttentionReading{Percentage: attention.Percentage}

	s.pipeline.AnalysisCycles.Inc()
	s.pipeline.AnalysisDuration.Observe(time.Since(started).Seconds())

	return result
}

func (s *Session) indicatorFailed(name string, err error) {
	s.pipeline.AnalysisFailures.WithLabelValues(name).Inc()
	s.logger.Error(err, "Indicator failed, substituting safe default", logging.Fields{
		"indicator": name,
	})
}

func (s *Session) publish(ctx context.Context, result *eeg.AnalysisResult) {
	for _, p := range s.publishers {
		if err := p.Publish(ctx, result); err != nil {
			s.pipeline.PublishErrors.Inc()
			s.logger.Error(err, "Publisher failed", logging.Fields{
				"publisher": p.Name(),
			})
		}
	}
}

// tail returns the trailing n samples of a channel-major snapshot, or
// the snapshot itself when it is no longer than n.
func tail(snapshot [][]float64, n int) [][]float64 {
	if len(snapshot) == 0 || len(snapshot[0]) <= n {
		return snapshot
	}
	out := make([][]float64, len(snapshot))
	for c, row := range snapshot {
		out[c] = row[len(row)-n:]
	}
	return out
}
