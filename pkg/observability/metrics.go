// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the deskhive authorization service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// APIBuckets defines histogram buckets suited for fast authorization
// endpoints, ranging from 1ms to 5s.
var APIBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskhive_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deskhive_request_duration_seconds",
			Help:    "Request duration",
			Buckets: APIBuckets,
		},
		[]string{"method"},
	)

	// AuthFailuresTotal counts credential verification failures by kind
	// (missing, malformed, bad_signature, expired).
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskhive_auth_failures_total",
			Help: "Credential verification failures",
		},
		[]string{"kind"},
	)

	// DecisionsTotal counts gate decisions by outcome ("allowed"/"denied")
	// and deny kind (empty for allowed).
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskhive_authz_decisions_total",
			Help: "Authorization gate decisions",
		},
		[]string{"outcome", "kind"},
	)

	// TenantLookupsTotal counts tenant directory lookups by result
	// ("hit", "miss", "error").
	TenantLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskhive_tenant_lookups_total",
			Help: "Tenant directory lookups",
		},
		[]string{"result"},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter,
	// labeled with the tenant plan tier.
	RateLimitRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskhive_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		DecisionsTotal,
		TenantLookupsTotal,
		RateLimitRejectedTotal,
	)
}
