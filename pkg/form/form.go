// Package form holds the member currently being composed or edited. It keeps
// raw user text only; validation belongs to the editor package.
package form

// Target identifies which member a draft replaces. The zero value means the
// draft creates a new member.
type Target struct {
	index int
	set   bool
}

// EditAt returns a target replacing the member at position i.
func EditAt(i int) Target {
	return Target{index: i, set: true}
}

// Index returns the targeted position and whether the draft is an edit.
func (t Target) Index() (int, bool) {
	return t.index, t.set
}

// Creating reports whether the draft adds a new member.
func (t Target) Creating() bool {
	return !t.set
}

// AttributeDraft is the attribute form as typed.
type AttributeDraft struct {
	Visibility string `validate:"required,visibility"`
	Name       string `validate:"required"`
	Type       string `validate:"required,attrtype"`
	Target     Target `validate:"-"`
}

// MethodDraft is the method form as typed. Args is the comma separated display
// form of the argument list.
type MethodDraft struct {
	Visibility string `validate:"required,visibility"`
	Name       string `validate:"required"`
	ReturnType string `validate:"required,returntype"`
	Args       string
	Target     Target `validate:"-"`
}

// Kind says which member variant the form currently holds.
type Kind int

const (
	KindNone Kind = iota
	KindAttribute
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindMethod:
		return "method"
	default:
		return "none"
	}
}

// State is the single draft slot. It holds an attribute draft or a method
// draft, never both.
type State struct {
	kind      Kind
	attribute AttributeDraft
	method    MethodDraft
}

// New returns an empty form in the creating state.
func New() *State {
	return &State{}
}

func (s *State) Kind() Kind {
	return s.kind
}

// SetAttribute stores d and discards any method draft.
func (s *State) SetAttribute(d AttributeDraft) {
	s.kind = KindAttribute
	s.attribute = d
	s.method = MethodDraft{}
}

// SetMethod stores d and discards any attribute draft.
func (s *State) SetMethod(d MethodDraft) {
	s.kind = KindMethod
	s.method = d
	s.attribute = AttributeDraft{}
}

// Attribute returns the attribute draft; ok is false in any other mode.
func (s *State) Attribute() (AttributeDraft, bool) {
	return s.attribute, s.kind == KindAttribute
}

// Method returns the method draft; ok is false in any other mode.
func (s *State) Method() (MethodDraft, bool) {
	return s.method, s.kind == KindMethod
}

// Editing reports whether the held draft replaces an existing member.
func (s *State) Editing() bool {
	switch s.kind {
	case KindAttribute:
		return !s.attribute.Target.Creating()
	case KindMethod:
		return !s.method.Target.Creating()
	}
	return false
}

// Dirty reports whether the form holds anything the user typed.
func (s *State) Dirty() bool {
	switch s.kind {
	case KindAttribute:
		return s.attribute != AttributeDraft{}
	case KindMethod:
		return s.method != MethodDraft{}
	}
	return false
}

// Reset returns the form to the empty creating state.
func (s *State) Reset() {
	*s = State{}
}
