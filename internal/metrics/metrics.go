// Package metrics holds the Prometheus instrumentation for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles all counters. Construct with New and share one instance.
type Metrics struct {
	RegistrationsTotal   prometheus.Counter
	UnregistrationsTotal prometheus.Counter
	CapacityRejections   prometheus.Counter
	NearbyQueries        prometheus.Counter
	TrendingQueries      prometheus.Counter
	NotifierFailures     prometheus.Counter
}

// New creates and registers all metrics against the given registerer.
// Tests pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventpulse_registrations_total",
			Help: "Total number of successful event registrations.",
		}),
		UnregistrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventpulse_unregistrations_total",
			Help: "Total number of successful unregistrations.",
		}),
		CapacityRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventpulse_capacity_rejections_total",
			Help: "Registrations rejected because the event was sold out.",
		}),
		NearbyQueries: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventpulse_nearby_queries_total",
			Help: "Total number of nearby discovery queries served.",
		}),
		TrendingQueries: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventpulse_trending_queries_total",
			Help: "Total number of trending discovery queries served.",
		}),
		NotifierFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventpulse_notifier_failures_total",
			Help: "Confirmation notifications that failed to deliver.",
		}),
	}
}
