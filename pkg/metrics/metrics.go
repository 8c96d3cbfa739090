package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics records round trips against the catalog backend.
type BackendMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewBackendMetrics registers the backend request metrics on the provided registerer.
func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	if reg == nil {
		return &BackendMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of catalog backend requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_request_success",
		Help: "Successful catalog backend requests.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_request_failure",
		Help: "Failed catalog backend requests.",
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure)
	return &BackendMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (b *BackendMetrics) ObserveDuration(operation string, duration time.Duration) {
	if b == nil || b.duration == nil {
		return
	}
	b.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (b *BackendMetrics) IncSuccess(operation string) {
	if b == nil || b.success == nil {
		return
	}
	b.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (b *BackendMetrics) IncFailure(operation string) {
	if b == nil || b.failure == nil {
		return
	}
	b.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
