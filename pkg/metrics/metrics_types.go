package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the editor
type Registry struct {
	// Editing Metrics
	CommitsTotal       *prometheus.CounterVec
	CommitDuration     *prometheus.HistogramVec
	ValidationFailures *prometheus.CounterVec
	RemovalsTotal      *prometheus.CounterVec

	// Store Metrics
	StoreClassesTotal    prometheus.Gauge
	StoreLinksTotal      prometheus.Gauge
	StoreWritesTotal     *prometheus.CounterVec
	StoreSnapshotVersion prometheus.Gauge

	// Session Metrics
	SelectionChangesTotal prometheus.Counter
	DraftsDiscardedTotal  prometheus.Counter
	ProjectionEditsTotal  *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initEditorMetrics()
	r.initStoreMetrics()
	r.initSessionMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
