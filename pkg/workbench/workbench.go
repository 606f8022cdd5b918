// Package workbench composes the class store, the editing service, the member
// form, the selection coordinator and the diagram projection into the actions
// of the class diagram page.
//
// The store is the single source of truth. The form and the canvas only hold
// copies, and every change flows through store writes.
package workbench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dd0wney/cluso-classdiagram/pkg/audit"
	"github.com/dd0wney/cluso-classdiagram/pkg/config"
	"github.com/dd0wney/cluso-classdiagram/pkg/constraints"
	"github.com/dd0wney/cluso-classdiagram/pkg/editor"
	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/health"
	"github.com/dd0wney/cluso-classdiagram/pkg/logging"
	"github.com/dd0wney/cluso-classdiagram/pkg/metrics"
	"github.com/dd0wney/cluso-classdiagram/pkg/projection"
	"github.com/dd0wney/cluso-classdiagram/pkg/pubsub"
	"github.com/dd0wney/cluso-classdiagram/pkg/selection"
	"github.com/dd0wney/cluso-classdiagram/pkg/store"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
	"github.com/dd0wney/cluso-classdiagram/pkg/validation"
)

// ErrNoSelection is returned by actions that need a selected class.
var ErrNoSelection = errors.New("no class selected")

// Workbench is one editing session.
type Workbench struct {
	// mu serializes user actions; the form and selection are not safe for
	// concurrent use on their own.
	mu sync.Mutex

	logger  logging.Logger
	metrics *metrics.Registry

	store     *store.Store
	editor    *editor.Service
	form      *form.State
	selection *selection.Coordinator
	canvas    *projection.Canvas
	validator *constraints.Validator
	history   *audit.History
	events    *pubsub.PubSub[Event]
	health    *health.Checker
}

// Option configures a Workbench.
type Option func(*Workbench)

func WithLogger(l logging.Logger) Option {
	return func(w *Workbench) { w.logger = l }
}

// WithMetrics records every action in r. Without it nothing is recorded.
func WithMetrics(r *metrics.Registry) Option {
	return func(w *Workbench) { w.metrics = r }
}

// New builds a session from cfg and seeds its classes. Seeded members go
// through the editing service, so an invalid seed fails here. A nil cfg
// selects config.Default().
func New(cfg *config.Config, opts ...Option) (*Workbench, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := cfg.ProjectionLayout()
	if err != nil {
		return nil, err
	}

	w := &Workbench{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(w)
	}

	w.store = store.New(store.WithLogger(w.logger), store.WithMetrics(w.metrics))
	w.editor = editor.New(editor.WithLogger(w.logger), editor.WithMetrics(w.metrics))
	w.form = form.New()
	w.selection = selection.New(w.store, w.form)
	w.canvas = projection.NewCanvas(projection.WithLayout(layout), projection.WithLogger(w.logger))
	w.validator = constraints.NewClassValidator()
	w.history = audit.NewHistory(validation.DefaultOrInt(cfg.AuditBuffer, audit.DefaultBufferSize))
	w.events = pubsub.New[Event](pubsub.WithBuffer(validation.DefaultOrInt(cfg.EventBuffer, pubsub.DefaultBuffer)))
	w.logger = w.logger.With(logging.Component("workbench"))

	w.selection.OnChange(w.selectionChanged)
	w.canvas.OnSelect(w.diagramSelected)
	w.canvas.OnModelChange(w.diagramChanged)

	w.health = health.NewChecker()
	w.health.RegisterCheck("model", health.ModelCheck(w.countViolations))
	w.health.RegisterCheck("events", health.EventsCheck(w.events.Dropped))

	for _, seed := range cfg.Seed {
		if err := w.seed(seed); err != nil {
			return nil, err
		}
	}
	w.reload()

	w.logger.Info("workbench ready", logging.Count(w.store.Snapshot().Len()))
	return w, nil
}

func (w *Workbench) seed(cc config.ClassConfig) error {
	rec := uml.NewClass(strings.TrimSpace(cc.Name))

	var err error
	for _, a := range cc.Attributes {
		if rec, err = w.editor.CommitAttribute(rec, a.Draft()); err != nil {
			return fmt.Errorf("seed class %q: %w", cc.Name, err)
		}
	}
	for _, m := range cc.Methods {
		if rec, err = w.editor.CommitMethod(rec, m.Draft()); err != nil {
			return fmt.Errorf("seed class %q: %w", cc.Name, err)
		}
	}

	snap, err := w.store.Add(rec)
	if err != nil {
		return fmt.Errorf("seed class %q: %w", cc.Name, err)
	}
	w.record(audit.NewEvent(audit.ActionCreate, audit.ResourceClass, rec.ID, "").From(audit.SourceConfig), snap)
	return nil
}

// Snapshot returns the current committed model.
func (w *Workbench) Snapshot() *store.Snapshot {
	return w.store.Snapshot()
}

// Canvas is the diagram projection. Picks, renames and moves made on it flow
// back into the session.
func (w *Workbench) Canvas() *projection.Canvas {
	return w.canvas
}

// History returns the edit history.
func (w *Workbench) History() *audit.History {
	return w.history
}

// Subscribe delivers an Event for every committed model change until ctx ends.
func (w *Workbench) Subscribe(ctx context.Context) (*pubsub.Subscription[Event], error) {
	return w.events.Subscribe(ctx, TopicModelChanged)
}

// SubscribeSelection delivers an Event for every selection move until ctx ends.
func (w *Workbench) SubscribeSelection(ctx context.Context) (*pubsub.Subscription[Event], error) {
	return w.events.Subscribe(ctx, TopicSelection)
}

// Check runs the class invariants over the whole model.
func (w *Workbench) Check() *constraints.ValidationResult {
	return w.validator.CheckAll(w.store.Snapshot().Classes())
}

// Health runs the session checks.
func (w *Workbench) Health() health.Response {
	return w.health.Check()
}

func (w *Workbench) countViolations() (classes, errs, warnings int) {
	snap := w.store.Snapshot()
	result := w.validator.CheckAll(snap.Classes())
	return snap.Len(),
		len(result.GetViolationsBySeverity(constraints.Error)),
		len(result.GetViolationsBySeverity(constraints.Warning))
}

// Close ends every subscription.
func (w *Workbench) Close() {
	w.events.Shutdown()
}

// reload pushes the committed model to the canvas.
func (w *Workbench) reload() {
	snap := w.store.Snapshot()
	w.canvas.Load(snap.Classes(), snap.Links())
}

// record stores an audit event stamped with the snapshot version.
func (w *Workbench) record(e *audit.Event, snap *store.Snapshot) {
	if snap != nil {
		e.Version = snap.Version()
	}
	w.history.Log(e)
}

// publish announces a committed change with the serialized graph.
func (w *Workbench) publish(kind EventKind, class uml.Identity, source audit.Source, snap *store.Snapshot) {
	model, err := w.canvas.ToJSON()
	if err != nil {
		w.logger.Warn("serialize model failed", logging.Error(err))
	}
	w.events.Publish(TopicModelChanged, Event{
		Kind:    kind,
		Class:   class,
		Version: snap.Version(),
		Source:  source,
		Model:   model,
	})
}

// commit writes rec back to the store and, on success, resets the form and
// refreshes every view.
func (w *Workbench) commit(rec uml.ClassRecord, e *audit.Event) (uml.ClassRecord, error) {
	snap, err := w.store.Replace(rec.ID, rec)
	if err != nil {
		return uml.ClassRecord{}, w.fail(e, err)
	}
	w.form.Reset()
	w.reload()
	w.record(e, snap)
	w.publish(EventClassUpdated, rec.ID, e.Source, snap)

	out, _ := snap.Get(rec.ID)
	return out, nil
}

// fail records a rejected action and returns err unchanged.
func (w *Workbench) fail(e *audit.Event, err error) error {
	e.Status = audit.StatusFailure
	e.ErrorMessage = err.Error()
	w.history.Log(e)
	return err
}
