// Package metrics exposes the Prometheus collectors of the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "atlas",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "atlas",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Coordinator metrics

	ActivitiesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "atlas",
		Name:      "activities_created_total",
		Help:      "Activities created through the linked-write transaction.",
	})

	ActivitiesDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "atlas",
		Name:      "activities_deleted_total",
		Help:      "Activities removed through the linked-delete transaction.",
	})

	ImageCleanupFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "atlas",
		Name:      "image_cleanup_failures_total",
		Help:      "Best-effort image removals that failed after a committed delete.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		ActivitiesCreatedTotal,
		ActivitiesDeletedTotal,
		ImageCleanupFailuresTotal,
	)
}
