package workbench

import (
	"strings"

	"github.com/dd0wney/cluso-classdiagram/pkg/audit"
	"github.com/dd0wney/cluso-classdiagram/pkg/logging"
	"github.com/dd0wney/cluso-classdiagram/pkg/metrics"
	"github.com/dd0wney/cluso-classdiagram/pkg/projection"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// selectionChanged runs inside the coordinator, under w.mu.
func (w *Workbench) selectionChanged(from, to uml.Identity, discarded bool) {
	if w.metrics != nil {
		w.metrics.RecordSelectionChange(discarded)
	}

	kind := EventSelected
	e := audit.NewEvent(audit.ActionSelect, audit.ResourceClass, to, "")
	if to.IsZero() {
		kind = EventDeselected
		e.ClassID = from
	}
	if discarded {
		e.Metadata = map[string]any{"discarded_draft": true}
		w.logger.Info("unsaved draft discarded", logging.ClassID(from))
	}
	w.logger.Debug("selection changed", logging.ClassID(to), logging.Bool("discarded_draft", discarded))
	w.history.Log(e)

	w.events.Publish(TopicSelection, Event{
		Kind:      kind,
		Class:     to,
		Previous:  from,
		Version:   w.store.Snapshot().Version(),
		Discarded: discarded,
	})
}

// diagramSelected handles a node picked on the canvas.
func (w *Workbench) diagramSelected(rec uml.ClassRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.selection.Select(rec.ID); err != nil {
		w.logger.Warn("diagram selected unknown class", logging.ClassID(rec.ID), logging.Error(err))
	}
}

// diagramChanged applies a finished canvas transaction. Renames are checked
// against the same class invariants as form edits; a rejected rename is
// reverted by reloading the canvas from the store.
func (w *Workbench) diagramChanged(ch projection.Change) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := ch.Patch
	switch p.Kind {
	case projection.PatchMove:
		e := audit.NewEvent(audit.ActionUpdate, audit.ResourceClass, p.Key, "").From(audit.SourceDiagram)
		e.Metadata = map[string]any{"loc": projection.FormatLoc(p.Loc)}
		w.logger.Debug("node moved", logging.ClassID(p.Key), logging.Any("loc", p.Loc))
		snap := w.store.Snapshot()
		w.record(e, snap)
		w.recordProjectionEdit(p.Kind, metrics.StatusSuccess)
		w.events.Publish(TopicModelChanged, Event{
			Kind:    EventNodeMoved,
			Class:   p.Key,
			Version: snap.Version(),
			Source:  audit.SourceDiagram,
			Model:   ch.Model,
		})

	case projection.PatchRename:
		e := audit.NewEvent(audit.ActionUpdate, audit.ResourceClass, p.Key, "").From(audit.SourceDiagram)
		e.Metadata = map[string]any{"name": p.Name, "previous": p.Previous}

		if err := w.applyRename(p.Key, p.Name); err != nil {
			w.logger.Warn("diagram rename rejected", logging.ClassID(p.Key), logging.ClassName(p.Name), logging.Error(err))
			w.recordProjectionEdit(p.Kind, metrics.StatusError)
			w.fail(e, err)
			w.reload()
			return
		}

		snap := w.store.Snapshot()
		w.reload()
		w.record(e, snap)
		w.recordProjectionEdit(p.Kind, metrics.StatusSuccess)
		w.publish(EventClassUpdated, p.Key, audit.SourceDiagram, snap)

	default:
		w.logger.Warn("unknown diagram patch", logging.String("kind", string(p.Kind)))
	}
}

// applyRename sets the name on the committed record, not on the canvas copy,
// so members committed since the canvas last loaded are kept. The result is
// checked against the class invariants before it is written.
func (w *Workbench) applyRename(id uml.Identity, name string) error {
	rec, ok := w.store.Snapshot().Get(id)
	if !ok {
		return uml.NewError("Rename").Class(id).Cause(uml.ErrNotFound).Build()
	}
	rec.Name = strings.TrimSpace(name)

	if err := w.validator.CheckRecord(rec).Err(); err != nil {
		return err
	}
	_, err := w.store.Replace(id, rec)
	return err
}

func (w *Workbench) recordProjectionEdit(kind projection.PatchKind, status string) {
	if w.metrics != nil {
		w.metrics.RecordProjectionEdit(string(kind), status)
	}
}
