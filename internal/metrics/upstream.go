package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream ParkHub API Prometheus metrics.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkhub",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream API requests",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "parkhub",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkhub",
			Name:      "upstream_errors_total",
			Help:      "Total upstream API errors by taxonomy branch",
		},
		[]string{"endpoint", "kind"},
	)

	UpstreamRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkhub",
			Name:      "upstream_retries_total",
			Help:      "Total scheduled retries of upstream calls",
		},
		[]string{"endpoint"},
	)

	BatchItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkhub",
			Name:      "batch_items_total",
			Help:      "Batch pass creation items by outcome",
		},
		[]string{"outcome"}, // "success" / "failure"
	)
)

var upstreamMetricsRegistered bool

// RegisterUpstreamMetrics registers Prometheus upstream metrics. Must be called once from main.
func RegisterUpstreamMetrics() {
	if upstreamMetricsRegistered {
		return
	}
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamErrorsTotal)
	prometheus.MustRegister(UpstreamRetriesTotal)
	prometheus.MustRegister(BatchItemsTotal)
	upstreamMetricsRegistered = true
}
