package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ecnlab/ecn/internal/domain/service"
)

const metricsNamespace = "ecn"

var _ service.Metrics = (*Metrics)(nil)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
	Predictions        *prometheus.CounterVec
	PredictionLatency  prometheus.Histogram
	CacheLookups       *prometheus.CounterVec
	StoreQueryLatency  *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route template and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of HTTP requests by method and route template.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "tsunami_predictions_total",
				Help:      "Tsunami potential predictions by thresholded outcome.",
			},
			[]string{"outcome"},
		),
		PredictionLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "tsunami_prediction_duration_seconds",
				Help:      "Latency of normalization plus the model forward pass.",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cache_lookups_total",
				Help:      "Record cache lookups by resource and result.",
			},
			[]string{"resource", "result"},
		),
		StoreQueryLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "store_query_duration_seconds",
				Help:      "Latency of record store queries by operation.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),
	}
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPrediction records a prediction outcome ("tsunami", "no_tsunami", "error").
func (m *Metrics) RecordPrediction(outcome string, duration time.Duration) {
	m.Predictions.WithLabelValues(outcome).Inc()
	m.PredictionLatency.Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func (m *Metrics) RecordCacheLookup(resource string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(resource, result).Inc()
}

// RecordStoreQuery records the duration of a store round trip.
func (m *Metrics) RecordStoreQuery(operation string, duration time.Duration) {
	m.StoreQueryLatency.WithLabelValues(operation).Observe(duration.Seconds())
}
