package uml

import "github.com/google/uuid"

// Identity is the stable key of a class. It never changes after creation and
// is the only key used to locate a class for update or delete.
type Identity string

// NewIdentity mints a fresh random identity.
func NewIdentity() Identity {
	return Identity(uuid.New().String())
}

// IsZero reports whether the identity is unset.
func (id Identity) IsZero() bool {
	return id == ""
}

func (id Identity) String() string {
	return string(id)
}
