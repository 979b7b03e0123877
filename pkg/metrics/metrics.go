// Package metrics documents the Prometheus metrics of the client and exposes
// them over HTTP. Metrics are defined in the packages that record them
// (client, pagination, ratelimit) and registered via promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer all client metrics are added to.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer Handler serves from.
var Gatherer = prometheus.DefaultGatherer

// Handler returns an http.Handler serving all registered metrics in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - twitter_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status ("transport_error" when none)
//   - twitter_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - twitter_errors_total{kind} (Counter): Errors by kind (transport, api)
//
// Pagination Metrics (pkg/pagination):
//   - twitter_pagination_pages_total (Counter): Cursor pages fetched
//   - twitter_pagination_runs_total{outcome} (Counter): Runs by outcome (exhausted, id_cap, page_cap, error)
//
// Rate Limit Metrics (pkg/ratelimit, only with Redis tracking enabled):
//   - twitter_rate_limit_remaining{resource} (Gauge): Last observed x-rate-limit-remaining
//   - twitter_rate_limit_limit{resource} (Gauge): Last observed x-rate-limit-limit
//
// Example Prometheus Queries:
//
//   # API Error Rate
//   rate(twitter_errors_total{kind="api"}[5m])
//
//   # Windows close to exhaustion
//   twitter_rate_limit_remaining < 5
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(twitter_request_duration_seconds_bucket[5m]))
//
//   # Capped pagination runs
//   increase(twitter_pagination_runs_total{outcome="id_cap"}[1h])
