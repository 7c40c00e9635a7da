package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	backofficeRequestsTotal  *prometheus.CounterVec
	backofficeLatencySeconds *prometheus.HistogramVec
	backofficeErrorsTotal    *prometheus.CounterVec
	auditEntriesTotal        *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used for backoffice observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		backofficeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_requests_total",
			Help: "Total number of backoffice API requests served.",
		}, []string{"method", "route", "status"})

		backofficeLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_latency_seconds",
			Help:    "Latency distribution for backoffice API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		backofficeErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_errors_total",
			Help: "Total number of error responses returned by backoffice endpoints.",
		}, []string{"method", "route", "status"})

		auditEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_audit_entries_total",
			Help: "Total number of reservation audit log entries recorded, by action.",
		}, []string{"action"})

		prometheus.MustRegister(
			backofficeRequestsTotal,
			backofficeLatencySeconds,
			backofficeErrorsTotal,
			auditEntriesTotal,
		)
	})
}

// BackofficeRequests exposes the counter for backoffice requests.
func BackofficeRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return backofficeRequestsTotal
}

// BackofficeLatency exposes the latency histogram for backoffice requests.
func BackofficeLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return backofficeLatencySeconds
}

// BackofficeErrors exposes the counter for backoffice error responses.
func BackofficeErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return backofficeErrorsTotal
}

// AuditEntries exposes the counter for recorded audit trail entries.
func AuditEntries() *prometheus.CounterVec {
	RegisterMetrics()
	return auditEntriesTotal
}
