// Package metrics holds the dedicated Prometheus registry for the API.
//
// The data-quality counters exist because the engine deliberately skips
// misconfigured or malformed records instead of failing the whole query;
// without a counter those exclusions would be invisible in production.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// CoverageConfigSkipped counts photographers silently excluded from a
	// qualification pass because their neighborhood coverage record is
	// absent or malformed.
	CoverageConfigSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "coverage_config_skipped_total", Help: "Photographers excluded due to missing or malformed coverage config."},
	)

	// MalformedCommitmentTime counts stored commitments whose time field
	// could not be parsed and therefore imposed no schedule constraint.
	MalformedCommitmentTime = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "malformed_commitment_time_total", Help: "Stored commitments skipped due to unparseable times."},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the package registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(CoverageConfigSkipped)
		Registry.MustRegister(MalformedCommitmentTime)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
