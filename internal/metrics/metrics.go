package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Completed analyses by input mode and resulting risk tier.
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailguard_analyses_total",
			Help: "Total number of completed analyses",
		},
		[]string{"mode", "risk"},
	)

	// Core analysis latency in seconds.
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailguard_analysis_duration_seconds",
			Help:    "Analysis duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 12), // 10µs to ~40ms
		},
		[]string{"mode"},
	)

	// HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailguard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Uploaded file sizes in bytes.
	UploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mailguard_upload_bytes",
			Help:    "Size of uploaded files in bytes",
			Buckets: prometheus.ExponentialBuckets(64, 4, 10),
		},
	)
)
