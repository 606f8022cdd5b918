// Package selection tracks which single class is active for editing.
package selection

import (
	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Reader is the read side of the class store.
type Reader interface {
	Get(id uml.Identity) (uml.ClassRecord, bool)
}

// ChangeFunc observes a selection change. discarded reports whether an
// unsaved draft was dropped.
type ChangeFunc func(from, to uml.Identity, discarded bool)

// Coordinator holds at most one selected identity and owns the reset of the
// member form when the selection moves.
type Coordinator struct {
	reader   Reader
	form     *form.State
	current  uml.Identity
	onChange ChangeFunc
}

// New returns a coordinator with nothing selected.
func New(reader Reader, fs *form.State) *Coordinator {
	return &Coordinator{reader: reader, form: fs}
}

// OnChange registers fn to run after each selection change.
func (c *Coordinator) OnChange(fn ChangeFunc) {
	c.onChange = fn
}

// Select makes id the active class. Moving to a different class discards any
// in-progress draft; reselecting the current class keeps it.
func (c *Coordinator) Select(id uml.Identity) error {
	if _, ok := c.reader.Get(id); !ok {
		return uml.NewError("Select").Class(id).Cause(uml.ErrNotFound).Build()
	}
	c.move(id)
	return nil
}

// Deselect clears the selection and the form.
func (c *Coordinator) Deselect() {
	c.move("")
}

// Current returns the selected identity, if any.
func (c *Coordinator) Current() (uml.Identity, bool) {
	return c.current, !c.current.IsZero()
}

// Record returns the committed record of the selected class. It reports false
// when nothing is selected or the class no longer exists.
func (c *Coordinator) Record() (uml.ClassRecord, bool) {
	if c.current.IsZero() {
		return uml.ClassRecord{}, false
	}
	return c.reader.Get(c.current)
}

func (c *Coordinator) move(to uml.Identity) {
	from := c.current
	if from == to {
		return
	}
	discarded := c.form.Dirty()
	c.form.Reset()
	c.current = to
	if c.onChange != nil {
		c.onChange(from, to, discarded)
	}
}
