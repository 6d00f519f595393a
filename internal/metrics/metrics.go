package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the API and the worker.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    prometheus.Counter
	errorsTotal      prometheus.Counter
	bytesStreamed    prometheus.Counter
	activeStreams    prometheus.Gauge
	transcodeTargets *prometheus.CounterVec
	encodeDuration   *prometheus.HistogramVec
}

// New creates and registers the collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_http_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_http_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	bytesStreamed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_stream_bytes_total",
		Help: "Total number of object bytes written to streaming clients",
	})
	activeStreams := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "video_active_streams",
		Help: "Number of streaming responses in flight",
	})
	transcodeTargets := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "video_transcode_targets_total",
		Help: "Transcode target attempts by resolution label and outcome",
	}, []string{"resolution", "outcome"})
	encodeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "video_encode_duration_seconds",
		Help:    "Wall time of one encoder invocation",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"resolution"})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		bytesStreamed,
		activeStreams,
		transcodeTargets,
		encodeDuration,
	)

	return &Metrics{
		registry:         registry,
		requestsTotal:    requestsTotal,
		errorsTotal:      errorsTotal,
		bytesStreamed:    bytesStreamed,
		activeStreams:    activeStreams,
		transcodeTargets: transcodeTargets,
		encodeDuration:   encodeDuration,
	}
}

func (m *Metrics) IncRequests() {
	if m == nil {
		return
	}
	m.requestsTotal.Inc()
}

func (m *Metrics) IncErrors() {
	if m == nil {
		return
	}
	m.errorsTotal.Inc()
}

// AddBytesStreamed adds n to the streamed bytes counter.
func (m *Metrics) AddBytesStreamed(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bytesStreamed.Add(float64(n))
}

// StreamStarted increments the in-flight gauge and returns the matching decrement.
func (m *Metrics) StreamStarted() func() {
	if m == nil {
		return func() {}
	}
	m.activeStreams.Inc()
	return m.activeStreams.Dec
}

// ObserveTranscodeTarget records the outcome ("ok" or "failed") of one target and its encode time.
func (m *Metrics) ObserveTranscodeTarget(label, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.transcodeTargets.WithLabelValues(label, outcome).Inc()
	m.encodeDuration.WithLabelValues(label).Observe(took.Seconds())
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
