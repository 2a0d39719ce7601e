// Package metrics exposes Prometheus instrumentation for investigations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvestigationsTotal counts finished investigations by outcome.
	// status is "completed" or "failed"; stage is the failing stage or "complete".
	InvestigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handy_recon_investigations_total",
			Help: "Total number of investigations by status",
		},
		[]string{"status", "stage"},
	)

	InvestigationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "handy_recon_investigation_duration_seconds",
			Help:    "Investigation wall-clock duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "handy_recon_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		[]string{"stage"},
	)

	// Probe metrics
	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handy_recon_probes_total",
			Help: "Total platform probes by platform and status",
		},
		[]string{"platform", "status"},
	)

	ProbeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "handy_recon_probe_duration_seconds",
			Help:    "Platform probe duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		},
		[]string{"platform"},
	)

	ProbesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "handy_recon_probes_in_flight",
			Help: "Number of platform probes currently running",
		},
	)
)
