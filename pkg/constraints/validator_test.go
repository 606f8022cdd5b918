package constraints

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

func validClass() uml.ClassRecord {
	return uml.ClassRecord{
		ID:   "c1",
		Name: "Example",
		Attributes: []uml.Attribute{
			{Visibility: uml.Public, Name: "attr1", Type: uml.TypeString},
			{Visibility: uml.Protected, Name: "attr2", Type: uml.TypeInt},
		},
		Methods: []uml.Method{
			{Visibility: uml.Public, Name: "method1", ReturnType: uml.ReturnVoid},
		},
	}
}

// TestClassValidator_Valid tests that a well-formed class passes
func TestClassValidator_Valid(t *testing.T) {
	result := NewClassValidator().CheckRecord(validClass())

	if !result.Valid {
		t.Errorf("Expected valid class, got violations: %+v", result.Violations)
	}
	if err := result.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
	if result.CheckedAt.IsZero() {
		t.Error("CheckedAt not set")
	}
}

// TestUniqueAttributeNames tests duplicate detection among attributes
func TestUniqueAttributeNames(t *testing.T) {
	rec := validClass()
	rec.Attributes = append(rec.Attributes, uml.Attribute{Visibility: uml.Private, Name: "attr1", Type: uml.TypeChar})

	violations := UniqueAttributeNames{}.Check(rec)
	if len(violations) != 1 {
		t.Fatalf("Expected 1 violation, got %d", len(violations))
	}
	if violations[0].Index != 2 || violations[0].Member != "attr1" {
		t.Errorf("Violation = %+v, want attr1 at index 2", violations[0])
	}
	if violations[0].Type != DuplicateAttribute {
		t.Errorf("Type = %v, want DuplicateAttribute", violations[0].Type)
	}
}

// TestUniqueMethodNames tests that overloads by signature are still duplicates
func TestUniqueMethodNames(t *testing.T) {
	rec := validClass()
	rec.Methods = append(rec.Methods, uml.Method{Visibility: uml.Public, Name: "method1", ReturnType: uml.ReturnInt, Args: []string{"x"}})

	result := NewClassValidator().CheckRecord(rec)
	if result.Valid {
		t.Fatal("Expected invalid result")
	}
	if len(result.GetViolationsByType(DuplicateMethod)) != 1 {
		t.Errorf("Expected 1 DuplicateMethod violation, got %+v", result.Violations)
	}
	if err := result.Err(); !errors.Is(err, uml.ErrDuplicateName) {
		t.Errorf("Err() = %v, want ErrDuplicateName", err)
	}
}

// TestClosedEnumerations tests that unset enumerations are rejected
func TestClosedEnumerations(t *testing.T) {
	rec := validClass()
	rec.Attributes[0].Type = 0
	rec.Methods[0].Visibility = 0

	violations := ClosedEnumerations{}.Check(rec)
	if len(violations) != 2 {
		t.Fatalf("Expected 2 violations, got %d", len(violations))
	}

	result := NewClassValidator().CheckRecord(rec)
	if err := result.Err(); !errors.Is(err, uml.ErrInvalidValue) {
		t.Errorf("Err() = %v, want ErrInvalidValue", err)
	}
}

// TestNonEmptyNames tests blank class and member names
func TestNonEmptyNames(t *testing.T) {
	rec := validClass()
	rec.Name = " "

	result := NewClassValidator().CheckRecord(rec)
	if !result.Valid {
		t.Error("Blank class name is only a warning")
	}
	if len(result.GetViolationsBySeverity(Warning)) != 1 {
		t.Errorf("Expected 1 warning, got %+v", result.Violations)
	}

	rec.Attributes[1].Name = ""
	result = NewClassValidator().CheckRecord(rec)
	if result.Valid {
		t.Error("Blank attribute name must be an error")
	}
	if err := result.Err(); !errors.Is(err, uml.ErrIncompleteFields) {
		t.Errorf("Err() = %v, want ErrIncompleteFields", err)
	}
}

// TestCheckAll tests validating several classes at once
func TestCheckAll(t *testing.T) {
	bad := validClass()
	bad.ID = "c2"
	bad.Attributes = append(bad.Attributes, bad.Attributes[0])

	result := NewClassValidator().CheckAll([]uml.ClassRecord{validClass(), bad})
	if result.Valid {
		t.Fatal("Expected invalid result")
	}
	if len(result.Violations) != 1 || result.Violations[0].Class != "c2" {
		t.Errorf("Violations = %+v, want one for c2", result.Violations)
	}
}

func TestEnumStrings(t *testing.T) {
	if Error.String() != "Error" || Severity(9).String() != "Unknown" {
		t.Error("Severity.String() mismatch")
	}
	if DuplicateMethod.String() != "DuplicateMethod" || ViolationType(9).String() != "Unknown" {
		t.Error("ViolationType.String() mismatch")
	}
}
