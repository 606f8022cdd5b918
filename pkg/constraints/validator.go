package constraints

import (
	"time"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// ValidationResult contains the results of validating classes against constraints
type ValidationResult struct {
	Valid      bool        // True if no error-severity violations found
	Violations []Violation // List of all violations
	CheckedAt  time.Time   // When validation was performed
}

// GetViolationsBySeverity returns violations filtered by severity level
func (vr *ValidationResult) GetViolationsBySeverity(severity Severity) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// GetViolationsByType returns violations filtered by type
func (vr *ValidationResult) GetViolationsByType(violationType ViolationType) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Type == violationType {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Err converts the first error-severity violation to a model error, or nil.
func (vr *ValidationResult) Err() error {
	for _, v := range vr.Violations {
		if v.Severity != Error {
			continue
		}
		b := uml.NewError(v.Constraint).Class(v.Class).Index(v.Index)
		switch v.Type {
		case DuplicateAttribute:
			b = b.Attribute(v.Member).Cause(uml.ErrDuplicateName)
		case DuplicateMethod:
			b = b.Method(v.Member).Cause(uml.ErrDuplicateName)
		case InvalidEnumeration:
			b = b.Cause(uml.ErrInvalidValue)
		default:
			b = b.Fields("name").Cause(uml.ErrIncompleteFields)
		}
		return b.Build()
	}
	return nil
}

// Validator manages a set of constraints and validates classes against them
type Validator struct {
	constraints []Constraint
}

// NewValidator creates a new empty validator
func NewValidator() *Validator {
	return &Validator{
		constraints: make([]Constraint, 0),
	}
}

// NewClassValidator returns a validator enforcing every class invariant
func NewClassValidator() *Validator {
	v := NewValidator()
	v.AddConstraints([]Constraint{
		NonEmptyNames{},
		ClosedEnumerations{},
		UniqueAttributeNames{},
		UniqueMethodNames{},
	})
	return v
}

// AddConstraint adds a constraint to the validator
func (v *Validator) AddConstraint(constraint Constraint) {
	v.constraints = append(v.constraints, constraint)
}

// AddConstraints adds multiple constraints to the validator
func (v *Validator) AddConstraints(constraints []Constraint) {
	v.constraints = append(v.constraints, constraints...)
}

// CheckRecord runs all constraints against one class
func (v *Validator) CheckRecord(rec uml.ClassRecord) *ValidationResult {
	return v.CheckAll([]uml.ClassRecord{rec})
}

// CheckAll runs all constraints against every class
func (v *Validator) CheckAll(classes []uml.ClassRecord) *ValidationResult {
	result := &ValidationResult{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}

	for _, rec := range classes {
		for _, constraint := range v.constraints {
			for _, violation := range constraint.Check(rec) {
				if violation.Severity == Error {
					result.Valid = false
				}
				result.Violations = append(result.Violations, violation)
			}
		}
	}

	return result
}
