package constraints

import (
	"fmt"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// UniqueAttributeNames ensures no two attributes of a class share a name.
type UniqueAttributeNames struct{}

func (UniqueAttributeNames) Name() string { return "UniqueAttributeNames" }

func (c UniqueAttributeNames) Check(rec uml.ClassRecord) []Violation {
	names := make([]string, len(rec.Attributes))
	for i, a := range rec.Attributes {
		names[i] = a.Name
	}
	return duplicates(rec.ID, names, DuplicateAttribute, c.Name(), "attribute")
}

// UniqueMethodNames ensures no two methods of a class share a name. Argument
// lists are ignored: overloading is not supported.
type UniqueMethodNames struct{}

func (UniqueMethodNames) Name() string { return "UniqueMethodNames" }

func (c UniqueMethodNames) Check(rec uml.ClassRecord) []Violation {
	names := make([]string, len(rec.Methods))
	for i, m := range rec.Methods {
		names[i] = m.Name
	}
	return duplicates(rec.ID, names, DuplicateMethod, c.Name(), "method")
}

// duplicates flags every occurrence after the first of a repeated name
func duplicates(class uml.Identity, names []string, vt ViolationType, constraint, kind string) []Violation {
	var violations []Violation
	first := make(map[string]int, len(names))

	for i, name := range names {
		j, seen := first[name]
		if !seen {
			first[name] = i
			continue
		}
		violations = append(violations, Violation{
			Type:       vt,
			Severity:   Error,
			Class:      class,
			Member:     name,
			Index:      i,
			Constraint: constraint,
			Message:    fmt.Sprintf("Duplicate %s name '%s' at %d (first at %d)", kind, name, i, j),
		})
	}

	return violations
}
