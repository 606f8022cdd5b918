package uml

import (
	"fmt"
	"strings"
)

// Visibility is a UML access modifier. The zero value is unset and never stored.
type Visibility uint8

const (
	Public Visibility = iota + 1
	Private
	Protected
)

// Visibilities lists the selectable markers in display order.
var Visibilities = []Visibility{Public, Private, Protected}

// Marker returns the one-character UML marker.
func (v Visibility) Marker() string {
	switch v {
	case Public:
		return "+"
	case Private:
		return "-"
	case Protected:
		return "#"
	default:
		return ""
	}
}

func (v Visibility) String() string {
	return v.Marker()
}

// Valid reports whether v is one of the enumerated modifiers.
func (v Visibility) Valid() bool {
	return v >= Public && v <= Protected
}

// ParseVisibility accepts a marker or its long form.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.TrimSpace(s) {
	case "":
		return 0, fmt.Errorf("%w: visibility", ErrIncompleteFields)
	case "+", "public":
		return Public, nil
	case "-", "private":
		return Private, nil
	case "#", "protected":
		return Protected, nil
	default:
		return 0, fmt.Errorf("%w: visibility %q", ErrInvalidValue, s)
	}
}

func (v Visibility) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: visibility %d", ErrInvalidValue, uint8(v))
	}
	return []byte(v.Marker()), nil
}

func (v *Visibility) UnmarshalText(b []byte) error {
	parsed, err := ParseVisibility(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// AttributeType is the declared type of an attribute.
type AttributeType uint8

const (
	TypeInt AttributeType = iota + 1
	TypeString
	TypeBoolean
	TypeFloat
	TypeDouble
	TypeChar
	TypeObject
)

var attributeTypeNames = [...]string{
	TypeInt:     "int",
	TypeString:  "string",
	TypeBoolean: "boolean",
	TypeFloat:   "float",
	TypeDouble:  "double",
	TypeChar:    "char",
	TypeObject:  "object",
}

// AttributeTypes lists the selectable attribute types in display order.
var AttributeTypes = []AttributeType{TypeInt, TypeString, TypeBoolean, TypeFloat, TypeDouble, TypeChar, TypeObject}

func (t AttributeType) String() string {
	if !t.Valid() {
		return ""
	}
	return attributeTypeNames[t]
}

func (t AttributeType) Valid() bool {
	return t >= TypeInt && t <= TypeObject
}

// ParseAttributeType accepts exactly the enumerated type names.
func ParseAttributeType(s string) (AttributeType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: type", ErrIncompleteFields)
	}
	for _, t := range AttributeTypes {
		if attributeTypeNames[t] == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: type %q", ErrInvalidValue, s)
}

func (t AttributeType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: type %d", ErrInvalidValue, uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *AttributeType) UnmarshalText(b []byte) error {
	parsed, err := ParseAttributeType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ReturnType is the declared return type of a method. ReturnVoid is the
// "no value" marker.
type ReturnType uint8

const (
	ReturnVoid ReturnType = iota + 1
	ReturnInt
	ReturnString
	ReturnBoolean
	ReturnFloat
	ReturnDouble
	ReturnChar
)

var returnTypeNames = [...]string{
	ReturnVoid:    "void",
	ReturnInt:     "int",
	ReturnString:  "string",
	ReturnBoolean: "boolean",
	ReturnFloat:   "float",
	ReturnDouble:  "double",
	ReturnChar:    "char",
}

// ReturnTypes lists the selectable return types in display order.
var ReturnTypes = []ReturnType{ReturnVoid, ReturnInt, ReturnString, ReturnBoolean, ReturnFloat, ReturnDouble, ReturnChar}

func (r ReturnType) String() string {
	if !r.Valid() {
		return ""
	}
	return returnTypeNames[r]
}

func (r ReturnType) Valid() bool {
	return r >= ReturnVoid && r <= ReturnChar
}

// ParseReturnType accepts exactly the enumerated return type names.
func ParseReturnType(s string) (ReturnType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: returnType", ErrIncompleteFields)
	}
	for _, r := range ReturnTypes {
		if returnTypeNames[r] == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: returnType %q", ErrInvalidValue, s)
}

func (r ReturnType) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: returnType %d", ErrInvalidValue, uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *ReturnType) UnmarshalText(b []byte) error {
	parsed, err := ParseReturnType(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
