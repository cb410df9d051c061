// Package metrics exposes Prometheus instrumentation for the funnel backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FunnelTransitions counts accepted funnel transitions by action.
	FunnelTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funnel_transitions_total",
		Help: "Accepted funnel state transitions by action.",
	}, []string{"action"})

	// FunnelRejections counts rejected transitions by action.
	FunnelRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funnel_rejections_total",
		Help: "Rejected funnel transitions by action.",
	}, []string{"action"})

	// EventsDispatched counts analytics events delivered per sink.
	EventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_events_dispatched_total",
		Help: "Analytics events delivered per sink.",
	}, []string{"sink"})

	// EventsSkipped counts analytics events skipped because a sink was
	// unavailable or rejected the event.
	EventsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_events_skipped_total",
		Help: "Analytics events skipped per sink.",
	}, []string{"sink", "reason"})

	// Submissions counts lead submissions by outcome.
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lead_submissions_total",
		Help: "Lead submissions by outcome.",
	}, []string{"outcome"})

	// LeadScore observes the distribution of computed lead scores.
	LeadScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lead_score",
		Help:    "Distribution of computed lead scores.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
)
