package walker

import "fmt"

// ErrorKind classifies a descriptor error, letting the framing layer
// decide how to attach it to the response without matching on error text.
type ErrorKind int

const (
	_ ErrorKind = iota
	MissingType
	DuplicateField
	EnumNoZero
	UnsupportedType
	InvalidFieldCombination
)

func (k ErrorKind) String() string {
	switch k {
	case MissingType:
		return "missing type reference"
	case DuplicateField:
		return "duplicate field number"
	case EnumNoZero:
		return "enum lacks a zero value"
	case UnsupportedType:
		return "unsupported field type"
	case InvalidFieldCombination:
		return "field combines repeated/map/optional"
	default:
		return "descriptor error"
	}
}

// Error is a fatal descriptor-walking error for the file being walked. The
// framing layer (cmd/protoc-gen-ts) reports the first one as the
// response's error, and that response carries no generated files.
type Error struct {
	Kind    ErrorKind
	File    string
	Message string // fully-qualified message/enum name, or "" at file scope
	Field   string // field name, or "" when not field-scoped
	Detail  string
}

func (e *Error) Error() string {
	loc := e.File
	if e.Message != "" {
		loc += ":" + e.Message
	}
	if e.Field != "" {
		loc += "." + e.Field
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", loc, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", loc, e.Kind)
}

func newError(kind ErrorKind, file, message, field, detail string) *Error {
	return &Error{Kind: kind, File: file, Message: message, Field: field, Detail: detail}
}
