package workbench

import (
	"strings"

	"github.com/dd0wney/cluso-classdiagram/pkg/audit"
	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/logging"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// AddClass appends an empty class with a fresh identity. An empty name
// selects uml.DefaultClassName. The selection does not move.
func (w *Workbench) AddClass(name string) (uml.ClassRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec := uml.NewClass(strings.TrimSpace(name))
	e := audit.NewEvent(audit.ActionCreate, audit.ResourceClass, rec.ID, "").From(audit.SourceEditor)

	snap, err := w.store.Add(rec)
	if err != nil {
		return uml.ClassRecord{}, w.fail(e, err)
	}
	w.reload()
	w.record(e, snap)
	w.publish(EventClassAdded, rec.ID, audit.SourceEditor, snap)
	return rec.Clone(), nil
}

// DeleteSelected removes the selected class and clears the selection.
func (w *Workbench) DeleteSelected() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, ok := w.selection.Current()
	if !ok {
		return ErrNoSelection
	}
	e := audit.NewEvent(audit.ActionDelete, audit.ResourceClass, id, "").From(audit.SourceEditor)

	snap, err := w.store.Remove(id)
	if err != nil {
		return w.fail(e, err)
	}
	w.selection.Deselect()
	w.reload()
	w.record(e, snap)
	w.publish(EventClassRemoved, id, audit.SourceEditor, snap)
	return nil
}

// Select makes id the active class. Moving to another class drops any
// unsaved draft.
func (w *Workbench) Select(id uml.Identity) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection.Select(id)
}

// Deselect clears the selection and the form.
func (w *Workbench) Deselect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection.Deselect()
}

// Selected returns the committed record of the selected class.
func (w *Workbench) Selected() (uml.ClassRecord, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection.Record()
}

// FormKind reports which draft the form holds.
func (w *Workbench) FormKind() form.Kind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Kind()
}

// AttributeDraft returns the attribute draft in progress.
func (w *Workbench) AttributeDraft() (form.AttributeDraft, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Attribute()
}

// MethodDraft returns the method draft in progress.
func (w *Workbench) MethodDraft() (form.MethodDraft, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Method()
}

// DraftAttribute stores typed attribute fields. When an attribute edit is in
// progress its target is kept, so the fields replace that attribute on submit.
func (w *Workbench) DraftAttribute(d form.AttributeDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.selection.Current(); !ok {
		return ErrNoSelection
	}
	if cur, ok := w.form.Attribute(); ok {
		d.Target = cur.Target
	}
	w.form.SetAttribute(d)
	return nil
}

// DraftMethod stores typed method fields, keeping the target of a method
// edit in progress.
func (w *Workbench) DraftMethod(d form.MethodDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.selection.Current(); !ok {
		return ErrNoSelection
	}
	if cur, ok := w.form.Method(); ok {
		d.Target = cur.Target
	}
	w.form.SetMethod(d)
	return nil
}

// EditAttribute loads attribute i of the selected class into the form.
func (w *Workbench) EditAttribute(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.selected()
	if err != nil {
		return err
	}
	d, err := w.editor.BeginEditAttribute(rec, i)
	if err != nil {
		return err
	}
	w.form.SetAttribute(d)
	return nil
}

// EditMethod loads method i of the selected class into the form.
func (w *Workbench) EditMethod(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.selected()
	if err != nil {
		return err
	}
	d, err := w.editor.BeginEditMethod(rec, i)
	if err != nil {
		return err
	}
	w.form.SetMethod(d)
	return nil
}

// CancelEdit discards the draft.
func (w *Workbench) CancelEdit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Reset()
}

// SubmitAttribute commits the attribute draft against the committed record
// of the selected class. On failure the draft and the store are unchanged.
func (w *Workbench) SubmitAttribute() (uml.ClassRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.selected()
	if err != nil {
		return uml.ClassRecord{}, err
	}
	d, _ := w.form.Attribute()
	e := memberEvent(d.Target, audit.ResourceAttribute, rec.ID, d.Name)

	next, err := w.editor.CommitAttribute(rec, d)
	if err != nil {
		return uml.ClassRecord{}, w.fail(e, err)
	}
	return w.commit(next, e)
}

// SubmitMethod commits the method draft. On failure the draft and the store
// are unchanged.
func (w *Workbench) SubmitMethod() (uml.ClassRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.selected()
	if err != nil {
		return uml.ClassRecord{}, err
	}
	d, _ := w.form.Method()
	e := memberEvent(d.Target, audit.ResourceMethod, rec.ID, d.Name)

	next, err := w.editor.CommitMethod(rec, d)
	if err != nil {
		return uml.ClassRecord{}, w.fail(e, err)
	}
	return w.commit(next, e)
}

// RemoveAttribute deletes attribute i of the selected class. Positions shift,
// so a draft in progress is discarded.
func (w *Workbench) RemoveAttribute(i int) (uml.ClassRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.selected()
	if err != nil {
		return uml.ClassRecord{}, err
	}
	e := audit.NewEvent(audit.ActionDelete, audit.ResourceAttribute, rec.ID, "").From(audit.SourceEditor)
	if i >= 0 && i < len(rec.Attributes) {
		e.Member = rec.Attributes[i].Name
	}

	next, err := w.editor.RemoveAttribute(rec, i)
	if err != nil {
		return uml.ClassRecord{}, w.fail(e, err)
	}
	return w.commit(next, e)
}

// RemoveMethod deletes method i of the selected class, discarding any draft.
func (w *Workbench) RemoveMethod(i int) (uml.ClassRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.selected()
	if err != nil {
		return uml.ClassRecord{}, err
	}
	e := audit.NewEvent(audit.ActionDelete, audit.ResourceMethod, rec.ID, "").From(audit.SourceEditor)
	if i >= 0 && i < len(rec.Methods) {
		e.Member = rec.Methods[i].Name
	}

	next, err := w.editor.RemoveMethod(rec, i)
	if err != nil {
		return uml.ClassRecord{}, w.fail(e, err)
	}
	return w.commit(next, e)
}

// Connect stores a link between two existing classes.
func (w *Workbench) Connect(from, to uml.Identity) error {
	return w.link(from, to, true)
}

// Disconnect removes a link.
func (w *Workbench) Disconnect(from, to uml.Identity) error {
	return w.link(from, to, false)
}

func (w *Workbench) link(from, to uml.Identity, add bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	l := uml.LinkRecord{From: from, To: to}
	e := audit.NewEvent(audit.ActionCreate, audit.ResourceLink, from, "").From(audit.SourceEditor)
	e.Metadata = map[string]any{"to": to.String()}
	kind := EventLinkAdded
	if !add {
		e.Action = audit.ActionDelete
		kind = EventLinkRemoved
	}

	if add {
		snap := w.store.Snapshot()
		for _, id := range []uml.Identity{from, to} {
			if !snap.Contains(id) {
				return w.fail(e, uml.NewError("Connect").Link().Class(id).Cause(uml.ErrNotFound).Build())
			}
		}
	}

	write := w.store.RemoveLink
	if add {
		write = w.store.AddLink
	}
	snap, err := write(l)
	if err != nil {
		return w.fail(e, err)
	}
	w.reload()
	w.record(e, snap)
	w.publish(kind, from, audit.SourceEditor, snap)
	return nil
}

// selected returns the committed record of the selected class.
func (w *Workbench) selected() (uml.ClassRecord, error) {
	if _, ok := w.selection.Current(); !ok {
		return uml.ClassRecord{}, ErrNoSelection
	}
	rec, ok := w.selection.Record()
	if !ok {
		id, _ := w.selection.Current()
		w.logger.Warn("selected class vanished", logging.ClassID(id))
		return uml.ClassRecord{}, uml.NewError("Selected").Class(id).Cause(uml.ErrNotFound).Build()
	}
	return rec, nil
}

func memberEvent(target form.Target, resource audit.ResourceType, class uml.Identity, name string) *audit.Event {
	action := audit.ActionCreate
	if !target.Creating() {
		action = audit.ActionUpdate
	}
	return audit.NewEvent(action, resource, class, strings.TrimSpace(name)).From(audit.SourceEditor)
}
