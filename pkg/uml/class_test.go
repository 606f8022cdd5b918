package uml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClass(t *testing.T) {
	a := NewClass("")
	b := NewClass("Order")

	assert.Equal(t, DefaultClassName, a.Name)
	assert.Equal(t, "Order", b.Name)
	assert.False(t, a.ID.IsZero())
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, a.Attributes)
	assert.NotNil(t, a.Methods)
}

func TestClassRecordClone(t *testing.T) {
	orig := ClassRecord{
		ID:         "c1",
		Name:       "Example",
		Attributes: []Attribute{{Visibility: Public, Name: "attr1", Type: TypeString}},
		Methods:    []Method{{Visibility: Public, Name: "m", ReturnType: ReturnVoid, Args: []string{"a"}}},
	}

	cp := orig.Clone()
	cp.Attributes[0].Name = "changed"
	cp.Methods[0].Args[0] = "z"

	assert.Equal(t, "attr1", orig.Attributes[0].Name)
	assert.Equal(t, "a", orig.Methods[0].Args[0])
}

func TestClassRecordClone_NilListsStayNil(t *testing.T) {
	orig := ClassRecord{ID: "c", Methods: []Method{{Visibility: Public, Name: "m", ReturnType: ReturnVoid}}}

	cp := orig.Clone()
	assert.Equal(t, orig, cp)
	assert.Nil(t, cp.Attributes)
	assert.Nil(t, cp.Methods[0].Args)

	empty := ClassRecord{ID: "e"}.Clone()
	assert.Nil(t, empty.Attributes)
	assert.Nil(t, empty.Methods)
}

func TestAttributeAndMethodIndex(t *testing.T) {
	rec := ClassRecord{
		Attributes: []Attribute{{Name: "a"}, {Name: "b"}},
		Methods:    []Method{{Name: "run"}},
	}

	assert.Equal(t, 1, rec.AttributeIndex("b"))
	assert.Equal(t, -1, rec.AttributeIndex("run"))
	assert.Equal(t, 0, rec.MethodIndex("run"))
	assert.Equal(t, -1, rec.MethodIndex("a"))
}

func TestMemberStrings(t *testing.T) {
	attr := Attribute{Visibility: Protected, Name: "attr2", Type: TypeInt}
	method := Method{Visibility: Public, Name: "method1", ReturnType: ReturnVoid}
	withArgs := Method{Visibility: Private, Name: "sum", ReturnType: ReturnInt, Args: []string{"a", "b"}}

	assert.Equal(t, "# attr2: int", attr.String())
	assert.Equal(t, "+ method1(): void", method.String())
	assert.Equal(t, "- sum(a, b): int", withArgs.String())
}

func TestModelError(t *testing.T) {
	err := NewError("CommitAttribute").Class("c1").Attribute("x").Index(0).Cause(ErrDuplicateName).Build()

	assert.True(t, errors.Is(err, ErrDuplicateName))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsValidation(err))
	assert.Equal(t, `CommitAttribute attribute "x" [0] (class c1): duplicate member name`, err.Error())

	incomplete := NewError("CommitMethod").Fields("name", "returnType").Cause(ErrIncompleteFields).Build()
	assert.Equal(t, []string{"name", "returnType"}, FieldsOf(incomplete))
	assert.False(t, IsValidation(NewError("Replace").Class("c1").Cause(ErrNotFound).Build()))
}
