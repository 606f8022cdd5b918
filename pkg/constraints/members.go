package constraints

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// ClosedEnumerations ensures every visibility, type and return type is one of
// the enumerated values. Zero values count as violations.
type ClosedEnumerations struct{}

func (ClosedEnumerations) Name() string { return "ClosedEnumerations" }

func (c ClosedEnumerations) Check(rec uml.ClassRecord) []Violation {
	var violations []Violation

	flag := func(member string, index int, field string) {
		violations = append(violations, Violation{
			Type:       InvalidEnumeration,
			Severity:   Error,
			Class:      rec.ID,
			Member:     member,
			Index:      index,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("Member '%s' has no valid %s", member, field),
		})
	}

	for i, a := range rec.Attributes {
		if !a.Visibility.Valid() {
			flag(a.Name, i, "visibility")
		}
		if !a.Type.Valid() {
			flag(a.Name, i, "type")
		}
	}
	for i, m := range rec.Methods {
		if !m.Visibility.Valid() {
			flag(m.Name, i, "visibility")
		}
		if !m.ReturnType.Valid() {
			flag(m.Name, i, "returnType")
		}
	}

	return violations
}

// NonEmptyNames flags blank member names and warns about a blank class name.
type NonEmptyNames struct{}

func (NonEmptyNames) Name() string { return "NonEmptyNames" }

func (c NonEmptyNames) Check(rec uml.ClassRecord) []Violation {
	var violations []Violation

	if strings.TrimSpace(rec.Name) == "" {
		violations = append(violations, Violation{
			Type:       EmptyName,
			Severity:   Warning,
			Class:      rec.ID,
			Index:      -1,
			Constraint: c.Name(),
			Message:    "Class has an empty name",
		})
	}

	for i, a := range rec.Attributes {
		if strings.TrimSpace(a.Name) == "" {
			violations = append(violations, Violation{
				Type: EmptyName, Severity: Error, Class: rec.ID, Index: i, Constraint: c.Name(),
				Message: fmt.Sprintf("Attribute at %d has an empty name", i),
			})
		}
	}
	for i, m := range rec.Methods {
		if strings.TrimSpace(m.Name) == "" {
			violations = append(violations, Violation{
				Type: EmptyName, Severity: Error, Class: rec.ID, Index: i, Constraint: c.Name(),
				Message: fmt.Sprintf("Method at %d has an empty name", i),
			})
		}
	}

	return violations
}
