// Package store holds the authoritative, ordered collection of classes.
//
// Writes never modify a published snapshot. Each successful write builds a new
// Snapshot and swaps it in atomically, so a reader holding an older snapshot
// (a render pass, for example) keeps a consistent view.
package store

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/cluso-classdiagram/pkg/logging"
	"github.com/dd0wney/cluso-classdiagram/pkg/metrics"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Store is the class model store.
type Store struct {
	current atomic.Pointer[Snapshot]
	writeMu sync.Mutex

	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func WithMetrics(r *metrics.Registry) Option {
	return func(s *Store) { s.metrics = r }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("store"))
	s.current.Store(newSnapshot(nil, nil, 0))
	return s
}

// Snapshot returns the current version. It never blocks.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Get is shorthand for Snapshot().Get.
func (s *Store) Get(id uml.Identity) (uml.ClassRecord, bool) {
	return s.Snapshot().Get(id)
}

// Add appends a class. The identity must be set and not already present.
func (s *Store) Add(rec uml.ClassRecord) (*Snapshot, error) {
	const op = "Add"
	return s.write(op, func(cur *Snapshot) (*Snapshot, error) {
		if rec.ID.IsZero() {
			return nil, uml.NewError(op).Class(rec.ID).Cause(uml.ErrInvalidValue).Build()
		}
		if cur.Contains(rec.ID) {
			return nil, uml.NewError(op).Class(rec.ID).Cause(uml.ErrDuplicateIdentity).Build()
		}
		classes := append(slices.Clip(cur.classes), rec.Clone())
		return newSnapshot(classes, cur.links, cur.version+1), nil
	}, logging.ClassID(rec.ID), logging.ClassName(rec.Name))
}

// Replace swaps the class with identity id for rec, keeping its position.
func (s *Store) Replace(id uml.Identity, rec uml.ClassRecord) (*Snapshot, error) {
	const op = "Replace"
	return s.write(op, func(cur *Snapshot) (*Snapshot, error) {
		i := cur.Index(id)
		if i < 0 {
			return nil, uml.NewError(op).Class(id).Cause(uml.ErrNotFound).Build()
		}
		if rec.ID != id {
			return nil, uml.NewError(op).Class(id).Cause(uml.ErrIdentityChanged).Build()
		}
		classes := slices.Clone(cur.classes)
		classes[i] = rec.Clone()
		return newSnapshot(classes, cur.links, cur.version+1), nil
	}, logging.ClassID(id))
}

// Remove deletes the class with identity id. Links that mention it are kept;
// they are opaque to the store.
func (s *Store) Remove(id uml.Identity) (*Snapshot, error) {
	const op = "Remove"
	return s.write(op, func(cur *Snapshot) (*Snapshot, error) {
		i := cur.Index(id)
		if i < 0 {
			return nil, uml.NewError(op).Class(id).Cause(uml.ErrNotFound).Build()
		}
		classes := slices.Delete(slices.Clone(cur.classes), i, i+1)
		return newSnapshot(classes, cur.links, cur.version+1), nil
	}, logging.ClassID(id))
}

// AddLink stores a relationship record.
func (s *Store) AddLink(link uml.LinkRecord) (*Snapshot, error) {
	return s.write("AddLink", func(cur *Snapshot) (*Snapshot, error) {
		links := append(slices.Clip(cur.links), link)
		return newSnapshot(cur.classes, links, cur.version+1), nil
	}, logging.String("from", link.From.String()), logging.String("to", link.To.String()))
}

// RemoveLink deletes the first link equal to link.
func (s *Store) RemoveLink(link uml.LinkRecord) (*Snapshot, error) {
	const op = "RemoveLink"
	return s.write(op, func(cur *Snapshot) (*Snapshot, error) {
		i := slices.Index(cur.links, link)
		if i < 0 {
			return nil, uml.NewError(op).Link().Cause(uml.ErrNotFound).Build()
		}
		links := slices.Delete(slices.Clone(cur.links), i, i+1)
		return newSnapshot(cur.classes, links, cur.version+1), nil
	})
}

// write serializes writers and publishes the snapshot built by fn.
func (s *Store) write(op string, fn func(cur *Snapshot) (*Snapshot, error), fields ...logging.Field) (*Snapshot, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.current.Load()
	next, err := fn(cur)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		s.logger.Warn("store write rejected", append(fields, logging.Operation(op), logging.Error(err))...)
		if s.metrics != nil {
			s.metrics.RecordStoreWrite(op, status, cur.Len(), len(cur.links), cur.version)
		}
		return nil, err
	}

	s.current.Store(next)
	s.logger.Debug("store write", append(fields, logging.Operation(op), logging.Version(next.version), logging.Count(next.Len()))...)
	if s.metrics != nil {
		s.metrics.RecordStoreWrite(op, status, next.Len(), len(next.links), next.version)
	}
	return next, nil
}
