package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, route and
	// status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthire_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "smarthire_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	// ResumesScreened counts scored resumes by outcome (scored or failed).
	ResumesScreened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthire_resumes_screened_total",
			Help: "Total number of resumes put through screening",
		},
		[]string{"outcome"},
	)

	// ScreeningRuns counts completed screening runs by final session status.
	ScreeningRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthire_screening_runs_total",
			Help: "Total number of screening runs by final status",
		},
		[]string{"status"},
	)

	// ScreeningDuration observes the wall time of full screening runs.
	ScreeningDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "smarthire_screening_run_duration_seconds",
			Help: "Duration of a full screening run in seconds",
		},
	)
)
