// Package metrics defines the Prometheus metrics exported by jobtracker. It is
// the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry on package initialization;
// Handler exposes them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jobtracker"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern (e.g. "GET /edit/{id}"), or "unmatched"
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served, by route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern, or "unmatched"
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// ApplicationMutationsTotal counts successful record changes.
// Label:
//   - operation: "create", "update" or "delete"
var ApplicationMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_mutations_total",
		Help:      "Total number of application records created, updated or deleted.",
	},
	[]string{"operation"},
)

// LoginAttemptsTotal counts login form submissions.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ExportsTotal counts completed CSV exports.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of CSV exports delivered.",
	},
)

// ExportedRecordsTotal counts records written across all exports.
var ExportedRecordsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exported_records_total",
		Help:      "Total number of application records written to CSV exports.",
	},
)

// Operation label values for ApplicationMutationsTotal.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Result label values for LoginAttemptsTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Handler returns the Prometheus exposition handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
