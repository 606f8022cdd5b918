package uml

import (
	"fmt"
	"slices"
)

// DefaultClassName is the label given to a freshly added class.
const DefaultClassName = "NewClass"

// Attribute is a typed field of a class.
type Attribute struct {
	Visibility Visibility    `json:"visibility"`
	Name       string        `json:"name"`
	Type       AttributeType `json:"type"`
}

// String renders the attribute the way the diagram lists it, e.g. "+ attr1: string".
func (a Attribute) String() string {
	return fmt.Sprintf("%s %s: %s", a.Visibility, a.Name, a.Type)
}

// Method is an operation of a class. Args are free-form descriptors.
type Method struct {
	Visibility Visibility `json:"visibility"`
	Name       string     `json:"name"`
	ReturnType ReturnType `json:"returnType"`
	Args       []string   `json:"args"`
}

// String renders the method signature, e.g. "+ method1(a, b): void".
func (m Method) String() string {
	return fmt.Sprintf("%s %s(%s): %s", m.Visibility, m.Name, FormatArgs(m.Args), m.ReturnType)
}

func (m Method) clone() Method {
	m.Args = slices.Clone(m.Args)
	return m
}

// ClassRecord is one class of the diagram. Attribute and method order is the
// display order.
type ClassRecord struct {
	ID         Identity    `json:"key"`
	Name       string      `json:"className"`
	Attributes []Attribute `json:"attributes"`
	Methods    []Method    `json:"methods"`
}

// NewClass returns an empty class with a fresh identity.
func NewClass(name string) ClassRecord {
	if name == "" {
		name = DefaultClassName
	}
	return ClassRecord{
		ID:         NewIdentity(),
		Name:       name,
		Attributes: []Attribute{},
		Methods:    []Method{},
	}
}

// Clone returns a deep copy sharing no slices with c. Nil member lists stay
// nil, so a clone compares equal to its source.
func (c ClassRecord) Clone() ClassRecord {
	out := ClassRecord{
		ID:         c.ID,
		Name:       c.Name,
		Attributes: slices.Clone(c.Attributes),
	}
	if c.Methods != nil {
		out.Methods = make([]Method, len(c.Methods))
		for i, m := range c.Methods {
			out.Methods[i] = m.clone()
		}
	}
	return out
}

// AttributeIndex returns the position of the attribute named name, or -1.
func (c ClassRecord) AttributeIndex(name string) int {
	for i, a := range c.Attributes {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// MethodIndex returns the position of the method named name, or -1.
func (c ClassRecord) MethodIndex(name string) int {
	for i, m := range c.Methods {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// LinkRecord is a relationship between two classes. It is stored and passed
// through but never interpreted.
type LinkRecord struct {
	From Identity `json:"from"`
	To   Identity `json:"to"`
}
