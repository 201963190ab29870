package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	httpErrorsTotal    *prometheus.CounterVec
	checkInsTotal      *prometheus.CounterVec
	checkOutsTotal     *prometheus.CounterVec
	hoursDeductedTotal prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edulane_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edulane_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edulane_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		checkInsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edulane_checkins_total",
			Help: "Total number of successful session check-ins.",
		}, []string{"kind"})

		checkOutsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edulane_checkouts_total",
			Help: "Total number of successful session check-outs.",
		}, []string{"kind"})

		hoursDeductedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edulane_hours_deducted_total",
			Help: "Whole hours deducted from legacy contract pools.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			checkInsTotal,
			checkOutsTotal,
			hoursDeductedTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// CheckIns exposes the counter for session check-ins.
func CheckIns() *prometheus.CounterVec {
	RegisterMetrics()
	return checkInsTotal
}

// CheckOuts exposes the counter for session check-outs.
func CheckOuts() *prometheus.CounterVec {
	RegisterMetrics()
	return checkOutsTotal
}

// HoursDeducted exposes the counter for pool deductions.
func HoursDeducted() prometheus.Counter {
	RegisterMetrics()
	return hoursDeductedTotal
}
