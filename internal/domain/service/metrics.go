package service

import "time"

// Metrics is the observability surface the application layer reports to.
// The Prometheus implementation lives in infrastructure/monitoring.
type Metrics interface {
	// RecordPrediction records one prediction with its thresholded outcome
	// ("tsunami", "no_tsunami" or "error") and the time spent in the model.
	RecordPrediction(outcome string, duration time.Duration)

	// RecordStoreQuery records the latency of a record store round trip.
	RecordStoreQuery(operation string, duration time.Duration)
}
