// Package editor validates member drafts against the committed record of the
// class being edited and produces the next version of that record.
//
// Every operation takes a uml.ClassRecord by value and returns a new record;
// the input is never modified, so a failed commit leaves the committed model
// exactly as it was.
package editor

import (
	"errors"
	"strings"
	"time"

	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/logging"
	"github.com/dd0wney/cluso-classdiagram/pkg/metrics"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

const (
	memberAttribute = "attribute"
	memberMethod    = "method"
)

// Service is the class editing service.
type Service struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for commit outcomes.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics sets the registry commits are recorded in.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Service) { s.metrics = r }
}

// New returns a Service. Without options it logs nothing and records no metrics.
func New(opts ...Option) *Service {
	s := &Service{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("editor"))
	return s
}

// CommitAttribute adds the drafted attribute, or replaces the one at the
// draft's target position.
func (s *Service) CommitAttribute(rec uml.ClassRecord, d form.AttributeDraft) (uml.ClassRecord, error) {
	start := time.Now()
	out, err := commitAttribute(rec, d)
	s.observe(memberAttribute, rec.ID, strings.TrimSpace(d.Name), d.Target, start, err)
	return out, err
}

// CommitMethod adds the drafted method, or replaces the one at the draft's
// target position. The argument list is parsed from its display form.
func (s *Service) CommitMethod(rec uml.ClassRecord, d form.MethodDraft) (uml.ClassRecord, error) {
	start := time.Now()
	out, err := commitMethod(rec, d)
	s.observe(memberMethod, rec.ID, strings.TrimSpace(d.Name), d.Target, start, err)
	return out, err
}

// RemoveAttribute deletes the attribute at position i.
func (s *Service) RemoveAttribute(rec uml.ClassRecord, i int) (uml.ClassRecord, error) {
	if i < 0 || i >= len(rec.Attributes) {
		return uml.ClassRecord{}, uml.NewError("RemoveAttribute").Class(rec.ID).Attribute("").Index(i).Cause(uml.ErrIndexOutOfRange).Build()
	}
	out := rec.Clone()
	removed := out.Attributes[i].Name
	out.Attributes = append(out.Attributes[:i], out.Attributes[i+1:]...)

	s.logger.Debug("attribute removed", logging.ClassID(rec.ID), logging.Member(memberAttribute, removed), logging.Index(i))
	if s.metrics != nil {
		s.metrics.RecordRemoval(memberAttribute)
	}
	return out, nil
}

// RemoveMethod deletes the method at position i.
func (s *Service) RemoveMethod(rec uml.ClassRecord, i int) (uml.ClassRecord, error) {
	if i < 0 || i >= len(rec.Methods) {
		return uml.ClassRecord{}, uml.NewError("RemoveMethod").Class(rec.ID).Method("").Index(i).Cause(uml.ErrIndexOutOfRange).Build()
	}
	out := rec.Clone()
	removed := out.Methods[i].Name
	out.Methods = append(out.Methods[:i], out.Methods[i+1:]...)

	s.logger.Debug("method removed", logging.ClassID(rec.ID), logging.Member(memberMethod, removed), logging.Index(i))
	if s.metrics != nil {
		s.metrics.RecordRemoval(memberMethod)
	}
	return out, nil
}

// BeginEditAttribute copies the attribute at position i into a draft
// targeting that position.
func (s *Service) BeginEditAttribute(rec uml.ClassRecord, i int) (form.AttributeDraft, error) {
	if i < 0 || i >= len(rec.Attributes) {
		return form.AttributeDraft{}, uml.NewError("BeginEditAttribute").Class(rec.ID).Attribute("").Index(i).Cause(uml.ErrIndexOutOfRange).Build()
	}
	a := rec.Attributes[i]
	return form.AttributeDraft{
		Visibility: a.Visibility.Marker(),
		Name:       a.Name,
		Type:       a.Type.String(),
		Target:     form.EditAt(i),
	}, nil
}

// BeginEditMethod copies the method at position i into a draft targeting that
// position, flattening the arguments to their display form.
func (s *Service) BeginEditMethod(rec uml.ClassRecord, i int) (form.MethodDraft, error) {
	if i < 0 || i >= len(rec.Methods) {
		return form.MethodDraft{}, uml.NewError("BeginEditMethod").Class(rec.ID).Method("").Index(i).Cause(uml.ErrIndexOutOfRange).Build()
	}
	m := rec.Methods[i]
	return form.MethodDraft{
		Visibility: m.Visibility.Marker(),
		Name:       m.Name,
		ReturnType: m.ReturnType.String(),
		Args:       uml.FormatArgs(m.Args),
		Target:     form.EditAt(i),
	}, nil
}

func (s *Service) observe(member string, class uml.Identity, name string, target form.Target, start time.Time, err error) {
	mode := "create"
	if !target.Creating() {
		mode = "edit"
	}

	if s.metrics != nil {
		status := metrics.StatusSuccess
		if err != nil {
			status = Reason(err)
		}
		s.metrics.RecordCommit(member, mode, status, time.Since(start))
	}

	fields := []logging.Field{
		logging.ClassID(class),
		logging.Member(member, name),
		logging.String("mode", mode),
		logging.Latency(time.Since(start)),
	}
	if err != nil {
		s.logger.Warn(member+" rejected", append(fields, logging.Error(err))...)
		return
	}
	s.logger.Info(member+" committed", fields...)
}

// Reason maps a commit error to a short label for metrics and audit records.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, uml.ErrIncompleteFields):
		return "incomplete_fields"
	case errors.Is(err, uml.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, uml.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, uml.ErrIndexOutOfRange):
		return "index_out_of_range"
	default:
		return "error"
	}
}
