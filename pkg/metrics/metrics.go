package metrics

import (
	"time"
)

// RecordCommit records a member commit. member is "attribute" or "method",
// mode is "create" or "edit", status is "success" or a failure reason.
func (r *Registry) RecordCommit(member, mode, status string, duration time.Duration) {
	r.CommitsTotal.WithLabelValues(member, mode, status).Inc()
	r.CommitDuration.WithLabelValues(member).Observe(duration.Seconds())
	if status != StatusSuccess {
		r.ValidationFailures.WithLabelValues(member, status).Inc()
	}
}

// RecordRemoval records a positional member delete
func (r *Registry) RecordRemoval(member string) {
	r.RemovalsTotal.WithLabelValues(member).Inc()
}

// RecordStoreWrite records a store write and the resulting snapshot shape
func (r *Registry) RecordStoreWrite(operation, status string, classes, links int, version uint64) {
	r.StoreWritesTotal.WithLabelValues(operation, status).Inc()
	if status != StatusSuccess {
		return
	}
	r.StoreClassesTotal.Set(float64(classes))
	r.StoreLinksTotal.Set(float64(links))
	r.StoreSnapshotVersion.Set(float64(version))
}

// RecordSelectionChange counts a selection change and whether it dropped a draft
func (r *Registry) RecordSelectionChange(discardedDraft bool) {
	r.SelectionChangesTotal.Inc()
	if discardedDraft {
		r.DraftsDiscardedTotal.Inc()
	}
}

// RecordProjectionEdit records a rename or move coming from the diagram
func (r *Registry) RecordProjectionEdit(kind, status string) {
	r.ProjectionEditsTotal.WithLabelValues(kind, status).Inc()
}

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
