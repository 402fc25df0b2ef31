// Package metrics provides Prometheus metrics for the API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "emmita"

var (
	// AuthorizationDecisions counts pipeline outcomes. outcome is "allow" or a
	// rejection kind.
	AuthorizationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_decisions_total",
			Help:      "Total number of authorization pipeline decisions",
		},
		[]string{"pipeline", "outcome"},
	)

	// CollaboratorDuration measures calls to external collaborators.
	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collaborator_duration_seconds",
			Help:      "Duration of collaborator calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"collaborator"},
	)

	// CollaboratorErrors counts collaborator calls that failed.
	CollaboratorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_errors_total",
			Help:      "Total number of failed collaborator calls",
		},
		[]string{"collaborator"},
	)

	// IdentityCacheLookups counts identity cache lookups by result.
	IdentityCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_cache_lookups_total",
			Help:      "Identity cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	// RateLimited counts requests refused by a rate limiter.
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests refused by a rate limiter",
		},
		[]string{"limiter"},
	)
)

// RecordDecision records an authorization pipeline outcome.
func RecordDecision(pipeline, outcome string) {
	AuthorizationDecisions.WithLabelValues(pipeline, outcome).Inc()
}

// ObserveCollaborator records the duration of a collaborator call and counts
// it as failed when err is non-nil.
func ObserveCollaborator(collaborator string, duration time.Duration, err error) {
	CollaboratorDuration.WithLabelValues(collaborator).Observe(duration.Seconds())
	if err != nil {
		CollaboratorErrors.WithLabelValues(collaborator).Inc()
	}
}

// RecordCacheLookup records an identity cache lookup.
func RecordCacheLookup(result string) {
	IdentityCacheLookups.WithLabelValues(result).Inc()
}

// RecordRateLimited records a request refused by the named limiter.
func RecordRateLimited(limiter string) {
	RateLimited.WithLabelValues(limiter).Inc()
}
