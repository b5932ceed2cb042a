// Package metrics provides Prometheus metrics for the Prompt Studio server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// enhancementsTotal counts gateway calls.
	// Labels:
	//   - operation: "enhance" or "ideas"
	//   - outcome: "success" or an error kind such as "rate_limited"
	enhancementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptstudio_enhancements_total",
			Help: "Total number of enhancement gateway calls by outcome",
		},
		[]string{"operation", "outcome"},
	)

	enhancementDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptstudio_enhancement_duration_seconds",
			Help:    "Duration of enhancement gateway calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"operation"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptstudio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptstudio_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	rateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptstudio_rate_limited_total",
			Help: "Total number of requests rejected by the per-client rate limiter",
		},
		[]string{"route"},
	)

	profilesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "promptstudio_profiles_created_total",
			Help: "Total number of profiles created on first sign-in",
		},
	)
)

func init() {
	prometheus.MustRegister(enhancementsTotal)
	prometheus.MustRegister(enhancementDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(rateLimitedTotal)
	prometheus.MustRegister(profilesCreatedTotal)
}

// RecordEnhancement records one gateway call and how long it took.
func RecordEnhancement(operation, outcome string, d time.Duration) {
	enhancementsTotal.WithLabelValues(operation, outcome).Inc()
	enhancementDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordHTTPRequest records a served request. route is the chi route
// pattern, never the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordRateLimited(route string) {
	rateLimitedTotal.WithLabelValues(route).Inc()
}

func RecordProfileCreated() {
	profilesCreatedTotal.Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
