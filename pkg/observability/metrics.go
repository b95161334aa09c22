package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Payone Server API request metrics
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payone_requests_total",
			Help: "Total number of Payone Server API requests",
		},
		[]string{
			"request", // preauthorization, authorization, capture
			"status",  // APPROVED, REDIRECT, PENDING, ERROR, transport_error, invalid_response
		},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "payone_request_duration_seconds",
			Help: "Duration of Payone Server API round trips in seconds",
			// Buckets: 100ms to 30s (typical gateway latencies)
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"request"},
	)
)

// RecordGatewayRequest records one Server API round trip
func RecordGatewayRequest(request, status string, durationSeconds float64) {
	gatewayRequestsTotal.WithLabelValues(request, status).Inc()
	gatewayRequestDuration.WithLabelValues(request).Observe(durationSeconds)
}
