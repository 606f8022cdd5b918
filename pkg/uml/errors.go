package uml

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every failure reported by the model packages wraps one of
// these, so callers classify with errors.Is.
var (
	ErrIncompleteFields  = errors.New("required field is empty")
	ErrDuplicateName     = errors.New("duplicate member name")
	ErrDuplicateIdentity = errors.New("duplicate class identity")
	ErrNotFound          = errors.New("class not found")
	ErrInvalidValue      = errors.New("value outside enumeration")
	ErrIndexOutOfRange   = errors.New("member index out of range")
	ErrIdentityChanged   = errors.New("class identity cannot change")
)

// ModelError carries structured context for a rejected model operation.
type ModelError struct {
	Op     string   // Operation that failed (e.g. "CommitAttribute", "Replace")
	Entity string   // "class", "attribute", "method" or "link"
	Class  Identity // Owning class, if known
	Member string   // Member name, for attribute and method failures
	Fields []string // Offending fields, for incomplete or invalid drafts
	Index  int      // Member index; -1 when not applicable
	Cause  error
}

func (e *ModelError) Error() string {
	msg := e.Op
	if e.Entity != "" {
		msg += " " + e.Entity
	}
	if e.Member != "" {
		msg += fmt.Sprintf(" %q", e.Member)
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" [%d]", e.Index)
	}
	if !e.Class.IsZero() {
		msg += fmt.Sprintf(" (class %s)", e.Class)
	}
	if len(e.Fields) > 0 {
		msg += fmt.Sprintf(" fields %v", e.Fields)
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

func (e *ModelError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder assembles a ModelError.
type ErrorBuilder struct {
	err ModelError
}

// NewError starts a ModelError for the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: ModelError{Op: op, Index: -1}}
}

func (b *ErrorBuilder) Class(id Identity) *ErrorBuilder {
	if b.err.Entity == "" {
		b.err.Entity = "class"
	}
	b.err.Class = id
	return b
}

func (b *ErrorBuilder) Attribute(name string) *ErrorBuilder {
	b.err.Entity = "attribute"
	b.err.Member = name
	return b
}

func (b *ErrorBuilder) Method(name string) *ErrorBuilder {
	b.err.Entity = "method"
	b.err.Member = name
	return b
}

func (b *ErrorBuilder) Link() *ErrorBuilder {
	b.err.Entity = "link"
	return b
}

func (b *ErrorBuilder) Index(i int) *ErrorBuilder {
	b.err.Index = i
	return b
}

func (b *ErrorBuilder) Fields(fields ...string) *ErrorBuilder {
	b.err.Fields = append(b.err.Fields, fields...)
	return b
}

func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the assembled error.
func (b *ErrorBuilder) Build() error {
	e := b.err
	return &e
}

// IsValidation reports whether err is a user-correctable draft failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrIncompleteFields) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrInvalidValue)
}

// FieldsOf extracts the offending field names from a ModelError chain.
func FieldsOf(err error) []string {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Fields
	}
	return nil
}
