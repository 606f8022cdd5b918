package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget(t *testing.T) {
	var zero Target
	assert.True(t, zero.Creating())

	i, ok := EditAt(3).Index()
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	assert.False(t, EditAt(0).Creating())
}

func TestStateSingleSlot(t *testing.T) {
	s := New()
	assert.Equal(t, KindNone, s.Kind())
	assert.False(t, s.Dirty())

	s.SetAttribute(AttributeDraft{Visibility: "+", Name: "x", Type: "int"})
	a, ok := s.Attribute()
	assert.True(t, ok)
	assert.Equal(t, "x", a.Name)
	_, ok = s.Method()
	assert.False(t, ok)

	s.SetMethod(MethodDraft{Name: "run"})
	_, ok = s.Attribute()
	assert.False(t, ok)
	m, ok := s.Method()
	assert.True(t, ok)
	assert.Equal(t, "run", m.Name)

	// switching back does not resurrect the old attribute draft
	s.SetAttribute(AttributeDraft{})
	a, _ = s.Attribute()
	assert.Equal(t, AttributeDraft{}, a)
}

func TestStateEditingAndReset(t *testing.T) {
	s := New()
	s.SetMethod(MethodDraft{Visibility: "+", Name: "m", ReturnType: "void", Args: "a, b", Target: EditAt(1)})
	assert.True(t, s.Editing())
	assert.True(t, s.Dirty())

	s.Reset()
	assert.Equal(t, KindNone, s.Kind())
	assert.False(t, s.Editing())
	assert.False(t, s.Dirty())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "attribute", KindAttribute.String())
	assert.Equal(t, "method", KindMethod.String())
	assert.Equal(t, "none", KindNone.String())
}
