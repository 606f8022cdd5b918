package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEditorMetrics() {
	r.CommitsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "classdiagram_commits_total",
			Help: "Total number of member commits",
		},
		[]string{"member", "mode", "status"},
	)

	r.CommitDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "classdiagram_commit_duration_seconds",
			Help:    "Member commit duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"member"},
	)

	r.ValidationFailures = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "classdiagram_validation_failures_total",
			Help: "Total number of rejected drafts by reason",
		},
		[]string{"member", "reason"},
	)

	r.RemovalsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "classdiagram_member_removals_total",
			Help: "Total number of removed members",
		},
		[]string{"member"},
	)
}
