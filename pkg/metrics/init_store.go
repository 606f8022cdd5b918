package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStoreMetrics() {
	r.StoreClassesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "classdiagram_store_classes_total",
			Help: "Number of classes in the current snapshot",
		},
	)

	r.StoreLinksTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "classdiagram_store_links_total",
			Help: "Number of links in the current snapshot",
		},
	)

	r.StoreWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "classdiagram_store_writes_total",
			Help: "Total number of store writes",
		},
		[]string{"operation", "status"},
	)

	r.StoreSnapshotVersion = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "classdiagram_store_snapshot_version",
			Help: "Version of the current snapshot",
		},
	)
}
