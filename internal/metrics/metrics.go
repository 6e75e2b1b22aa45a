// Package metrics exposes prometheus instrumentation for the streaming
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline bundles the counters and histograms recorded along the
// ingest → analysis → publish path.
type Pipeline struct {
	registry *prometheus.Registry

	PacketsReceived  prometheus.Counter
	PacketsMalformed prometheus.Counter
	PacketsDropped   prometheus.Counter
	SamplesIngested  prometheus.Counter
	AnalysisCycles   prometheus.Counter
	AnalysesDropped  prometheus.Counter
	AnalysisFailures *prometheus.CounterVec
	PublishErrors    prometheus.Counter
	AnalysisDuration prometheus.Histogram
}

// NewPipeline creates the pipeline metrics on a private registry.
func NewPipeline() *Pipeline {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Pipeline{
		registry: registry,
		PacketsReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "eeg_packets_received_total",
			Help: "Data packets received on the ingest path.",
		}),
		PacketsMalformed: factory.NewCounter(prometheus.CounterOpts{
			Name: "eeg_packets_malformed_total",
			Help: "Packets discarded for bad size or non-finite values.",
		}),
		PacketsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "eeg_packets_dropped_total",
			Help: "Packets evicted from the full ingest queue.",
		}),
		SamplesIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "eeg_samples_ingested_total",
			Help: "Samples pushed into the rolling buffer.",
		}),
		AnalysisCycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "eeg_analysis_cycles_total",
			Help: "Completed analysis passes.",
		}),
		AnalysesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "eeg_analyses_dropped_total",
			Help: "Stale snapshots replaced before analysis ran.",
		}),
		AnalysisFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eeg_analysis_failures_total",
			Help: "Classifier failures substituted with safe defaults.",
		}, []string{"indicator"}),
		PublishErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "eeg_publish_errors_total",
			Help: "Failed result deliveries to publish sinks.",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "eeg_analysis_duration_seconds",
			Help:    "Wall time of one analysis pass.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
}

// Handler serves the registry in the prometheus exposition format.
func (p *Pipeline) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
