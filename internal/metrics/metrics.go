// Package metrics holds the Prometheus collectors shared across the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set groups every collector the bot exports. Construct one per process and
// pass it by reference; collectors register against the given registerer.
type Set struct {
	// APIRequests counts commerce API calls by verb and response status.
	APIRequests *prometheus.CounterVec

	// APILatency observes commerce API call duration by verb.
	APILatency *prometheus.HistogramVec

	// TokenRefreshes counts client-credentials token exchanges.
	TokenRefreshes prometheus.Counter

	// Turns counts handled conversation turns by effective state.
	Turns *prometheus.CounterVec

	// TurnFailures counts turns abandoned due to session-store errors.
	TurnFailures prometheus.Counter
}

// New creates and registers the collector set.
func New(reg prometheus.Registerer) *Set {
	factory := promauto.With(reg)
	return &Set{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopfront",
			Subsystem: "commerce",
			Name:      "api_requests_total",
			Help:      "Commerce API requests by verb and status.",
		}, []string{"method", "status"}),
		APILatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shopfront",
			Subsystem: "commerce",
			Name:      "api_request_duration_seconds",
			Help:      "Commerce API request latency by verb.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		TokenRefreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shopfront",
			Subsystem: "commerce",
			Name:      "token_refreshes_total",
			Help:      "Client-credentials token exchanges performed.",
		}),
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopfront",
			Subsystem: "engine",
			Name:      "turns_total",
			Help:      "Conversation turns handled, by effective state.",
		}, []string{"state"}),
		TurnFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shopfront",
			Subsystem: "engine",
			Name:      "turn_failures_total",
			Help:      "Turns abandoned because the session store failed.",
		}),
	}
}

// NewNop returns a Set backed by a throwaway registry, for tests and for
// callers that don't care about metrics.
func NewNop() *Set {
	return New(prometheus.NewRegistry())
}
