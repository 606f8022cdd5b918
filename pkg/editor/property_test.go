package editor

import (
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Op is one random user action against a class.
type Op struct {
	Kind  int    // 0 add attr, 1 edit attr, 2 remove attr, 3 add method, 4 edit method, 5 remove method
	Name  string // drawn from a tiny alphabet so collisions are frequent
	Index int
	Type  string
}

func genOp() gopter.Gen {
	return gen.Struct(reflect.TypeOf(Op{}), map[string]gopter.Gen{
		"Kind":  gen.IntRange(0, 5),
		"Name":  gen.OneConstOf("a", "b", "c", "d", ""),
		"Index": gen.IntRange(-1, 4),
		"Type":  gen.OneConstOf("int", "string", "void", "char", "bogus"),
	})
}

func apply(svc *Service, rec uml.ClassRecord, op Op) (uml.ClassRecord, error) {
	target := form.Target{}
	if op.Kind == 1 || op.Kind == 4 {
		target = form.EditAt(op.Index)
	}
	switch op.Kind {
	case 0, 1:
		return svc.CommitAttribute(rec, form.AttributeDraft{Visibility: "+", Name: op.Name, Type: op.Type, Target: target})
	case 2:
		return svc.RemoveAttribute(rec, op.Index)
	case 3, 4:
		return svc.CommitMethod(rec, form.MethodDraft{Visibility: "#", Name: op.Name, ReturnType: op.Type, Args: op.Name + ", x", Target: target})
	default:
		return svc.RemoveMethod(rec, op.Index)
	}
}

func unique(rec uml.ClassRecord) bool {
	seen := map[string]bool{}
	for _, a := range rec.Attributes {
		if seen[a.Name] {
			return false
		}
		seen[a.Name] = true
	}
	seen = map[string]bool{}
	for _, m := range rec.Methods {
		if seen[m.Name] {
			return false
		}
		seen[m.Name] = true
	}
	return true
}

// TestMemberInvariants drives random operation sequences through the service
func TestMemberInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("no duplicate attribute or method names", prop.ForAll(
		func(ops []Op) bool {
			svc := New()
			rec := uml.NewClass("Prop")
			for _, op := range ops {
				next, err := apply(svc, rec, op)
				if err == nil {
					rec = next
				}
				if !unique(rec) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genOp()),
	))

	properties.Property("failed operations leave the record unchanged", prop.ForAll(
		func(ops []Op) bool {
			svc := New()
			rec := uml.NewClass("Prop")
			for _, op := range ops {
				before := rec.Clone()
				next, err := apply(svc, rec, op)
				if err != nil {
					if !reflect.DeepEqual(before, rec) {
						return false
					}
					continue
				}
				rec = next
			}
			return true
		},
		gen.SliceOf(genOp()),
	))

	properties.Property("enumerated values only", prop.ForAll(
		func(ops []Op) bool {
			svc := New()
			rec := uml.NewClass("Prop")
			for _, op := range ops {
				if next, err := apply(svc, rec, op); err == nil {
					rec = next
				}
			}
			for _, a := range rec.Attributes {
				if !a.Visibility.Valid() || !a.Type.Valid() || a.Name == "" {
					return false
				}
			}
			for _, m := range rec.Methods {
				if !m.Visibility.Valid() || !m.ReturnType.Valid() || m.Name == "" {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genOp()),
	))

	properties.TestingRun(t)
}
