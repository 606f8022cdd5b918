package constraints

import (
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Severity indicates the importance of a violation
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationType categorizes the type of constraint violation
type ViolationType int

const (
	DuplicateAttribute ViolationType = iota
	DuplicateMethod
	InvalidEnumeration
	EmptyName
)

func (vt ViolationType) String() string {
	switch vt {
	case DuplicateAttribute:
		return "DuplicateAttribute"
	case DuplicateMethod:
		return "DuplicateMethod"
	case InvalidEnumeration:
		return "InvalidEnumeration"
	case EmptyName:
		return "EmptyName"
	default:
		return "Unknown"
	}
}

// Violation is one broken invariant in one class
type Violation struct {
	Type       ViolationType
	Severity   Severity
	Class      uml.Identity
	Member     string // attribute or method name, empty for class-level findings
	Index      int    // member position, -1 for class-level findings
	Constraint string
	Message    string
}

// Constraint checks a single class record.
type Constraint interface {
	// Check returns the violations found in rec (empty if valid)
	Check(rec uml.ClassRecord) []Violation

	// Name returns a human-readable name for the constraint
	Name() string
}
