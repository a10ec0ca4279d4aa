package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "whisper_server"

// Outcome labels for transcription attempts.
const (
	OutcomeSuccess    = "success"
	OutcomeBadRequest = "bad_request"
	OutcomeFailed     = "failed"
)

// Metrics holds the Prometheus collectors the server exports on /metrics.
type Metrics struct {
	transcriptions   *prometheus.CounterVec
	inferenceLatency prometheus.Histogram
	uploadBytes      prometheus.Histogram
	inFlight         prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transcriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Transcription requests by outcome.",
		}, []string{"outcome"}),
		inferenceLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Time spent inside the speech-to-text model per request.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_size_bytes",
			Help:      "Size of uploaded audio files.",
			Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 8),
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transcriptions_in_flight",
			Help:      "Transcriptions currently running.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.transcriptions,
		m.inferenceLatency,
		m.uploadBytes,
		m.inFlight,
		m.httpRequests,
		m.httpLatency,
	)

	return m
}

// ObserveInference records the time one model call took, whether it
// succeeded or not.
func (m *Metrics) ObserveInference(d time.Duration) {
	m.inferenceLatency.Observe(d.Seconds())
}

// RecordSuccess records a successful transcription
func (m *Metrics) RecordSuccess(uploadSize int64) {
	m.transcriptions.WithLabelValues(OutcomeSuccess).Inc()
	m.uploadBytes.Observe(float64(uploadSize))
}

// RecordFailure records a failed transcription
func (m *Metrics) RecordFailure(outcome string) {
	m.transcriptions.WithLabelValues(outcome).Inc()
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement.
func (m *Metrics) TrackInFlight() func() {
	m.inFlight.Inc()
	return m.inFlight.Dec
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}
