package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web-Frontend Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genhub",
			Subsystem: "web_frontend",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genhub",
			Subsystem: "web_frontend",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Upload counters
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genhub",
			Subsystem: "web_frontend",
			Name:      "uploads_total",
			Help:      "Total files accepted into upload sessions",
		},
		[]string{"media_type", "status"},
	)

	// Run submissions by terminal outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genhub",
			Subsystem: "web_frontend",
			Name:      "submissions_total",
			Help:      "Run submissions by outcome",
		},
		[]string{"model", "outcome"},
	)

	// Gating rejections before any platform call
	GatingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genhub",
			Subsystem: "web_frontend",
			Name:      "gating_rejections_total",
			Help:      "Submissions rejected before validation",
		},
		[]string{"reason"},
	)

	// Platform API call durations
	PlatformCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genhub",
			Subsystem: "web_frontend",
			Name:      "platform_call_duration_seconds",
			Help:      "Outbound platform API call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 60},
		},
		[]string{"operation", "status"},
	)
)

// RecordRequest records a completed HTTP request.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}
