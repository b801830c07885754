package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GuardDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casting_guard_decisions_total",
		Help: "Authorization guard decisions by required permission and outcome",
	}, []string{"permission", "outcome"})

	KeySetRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casting_jwks_refresh_total",
		Help: "Trusted key set refresh attempts by result",
	}, []string{"result"})

	KeySetSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "casting_jwks_keys",
		Help: "Number of keys in the current trusted key set",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "casting_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route pattern and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// RecordGuardDecision counts one guard outcome: "granted" or the failure kind.
func RecordGuardDecision(permission, outcome string) {
	GuardDecisions.WithLabelValues(permission, outcome).Inc()
}

// RecordKeySetRefresh counts a refresh attempt and reports the resulting key count.
func RecordKeySetRefresh(result string, keys int) {
	KeySetRefreshes.WithLabelValues(result).Inc()
	KeySetSize.Set(float64(keys))
}
