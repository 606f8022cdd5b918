package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSessionMetrics() {
	r.SelectionChangesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "classdiagram_selection_changes_total",
			Help: "Total number of selection changes",
		},
	)

	r.DraftsDiscardedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "classdiagram_drafts_discarded_total",
			Help: "Unsaved drafts dropped by a selection change",
		},
	)

	r.ProjectionEditsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "classdiagram_projection_edits_total",
			Help: "Edits reported by the diagram projection",
		},
		[]string{"kind", "status"},
	)
}
