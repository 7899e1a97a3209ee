// Package metrics exposes the monitoring engine's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChecksTotal counts per-user health check cycles.
	ChecksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goatfit_health_checks_total",
			Help: "Total number of per-user health check cycles run",
		},
	)

	// ReadingsFetched counts vital readings pulled from the fitness API.
	ReadingsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goatfit_readings_fetched_total",
			Help: "Total number of vital readings fetched",
		},
	)

	// FetchFailures counts failed fitness API calls.
	FetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goatfit_fetch_failures_total",
			Help: "Total number of failed fitness API fetches",
		},
	)

	// AlertsDispatched counts qualifying threshold breaches that produced an alert.
	AlertsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goatfit_alerts_dispatched_total",
			Help: "Total number of alerts dispatched, by severity",
		},
		[]string{"severity"},
	)

	// AlertEmailFailures counts emails that could not be delivered.
	AlertEmailFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goatfit_alert_email_failures_total",
			Help: "Total number of alert emails that failed to send",
		},
	)

	// AIFailures counts best-effort AI analysis errors.
	AIFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goatfit_ai_analysis_failures_total",
			Help: "Total number of failed AI analysis calls",
		},
	)

	// CheckDuration tracks how long one user's check cycle takes.
	CheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "goatfit_check_duration_seconds",
			Help:    "Duration of a single user health check cycle",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)
