// Package ir defines the language-neutral intermediate representation the
// descriptor walker produces and the emitter consumes: a tree of message
// and enum nodes with resolved field metadata. It has no dependency on
// descriptor.proto or protoreflect — walker is the only package that knows
// how to build one of these from a FileDescriptorProto.
package ir

// Node is a Message or an Enum, expressed as an interface implemented by
// the two concrete node types rather than an inheritance hierarchy —
// emitters dispatch on the concrete type with a type switch.
type Node interface {
	Name() string
	NamespacedName() string
	Leading() string

	node() // unexported marker, closes the sum type to this package's two members
}

// Comments carries the free-form documentation block attached to a node,
// if the descriptor's SourceCodeInfo had one.
type Comments struct {
	Leading string
}

// Enum is a proto3 enum: an ordered set of name/number pairs. The zero
// value (number 0) is guaranteed present by the walker, which rejects an
// enum descriptor lacking one as a fatal error.
type Enum struct {
	NameStr     string
	Namespaced  string
	CommentsVal Comments
	Values      []EnumValue
}

// EnumValue is one enumerator.
type EnumValue struct {
	Name   string
	Number int32
}

func (e *Enum) Name() string           { return e.NameStr }
func (e *Enum) NamespacedName() string { return e.Namespaced }
func (e *Enum) Leading() string        { return e.CommentsVal.Leading }
func (*Enum) node()                    {}

// ZeroValueName returns the enumerator name for number 0. Callers may
// assume it exists; the walker never produces an Enum without one.
func (e *Enum) ZeroValueName() string {
	for _, v := range e.Values {
		if v.Number == 0 {
			return v.Name
		}
	}
	return ""
}

// Message is a proto3 message, or the synthetic entry-message a map<K,V>
// field's descriptor introduces.
type Message struct {
	NameStr     string
	Namespaced  string
	CommentsVal Comments

	// Children holds nested messages and enums in descriptor order.
	Children []Node

	// IsMap is true for a map-entry message: it carries exactly two
	// fields, "key" at index 1 and "value" at index 2, and never receives
	// a public encode/decode/initialize surface.
	IsMap bool

	Fields []*Field
}

func (m *Message) Name() string           { return m.NameStr }
func (m *Message) NamespacedName() string { return m.Namespaced }
func (m *Message) Leading() string        { return m.CommentsVal.Leading }
func (*Message) node()                    {}

// KeyField and ValueField return the two fields of a map-entry message.
// Callers must check IsMap first; this panics on a non-map message with
// fewer than two fields, which the walker never produces.
func (m *Message) KeyField() *Field   { return m.Fields[0] }
func (m *Message) ValueField() *Field { return m.Fields[1] }

// Field is one message field. Read/Write/ReadPacked are the wire-codec
// method tags the emitter uses to pick which wire.Decoder/wire.Writer
// method to call in generated code.
type Field struct {
	Name      string // generated-code attribute name, lower-camel
	ProtoName string // original proto field name
	JSONName  string // descriptor jsonName, or lower-camel of ProtoName

	Index int32

	Repeated bool
	Optional bool
	Map      bool

	Read       string
	Write      string
	ReadPacked string

	// TSType/TSTypeJSON are the type expressions the emitter writes for
	// this field's binary and JSON representations respectively. For a
	// scalar these are primitive tags ("number", "bigint", "string",
	// "boolean", "Uint8Array"); for a message/enum reference they are the
	// referenced node's namespaced name.
	TSType     string
	TSTypeJSON string

	DefaultValue string

	// MessageType/EnumType are non-nil exactly when the field references
	// that kind of IR node: every field's TSType either names a primitive
	// or resolves to an IR node present in the identifier table.
	MessageType *Message
	EnumType    *Enum
}

// IsScalar reports whether the field is neither a message nor an enum
// reference.
func (f *Field) IsScalar() bool { return f.MessageType == nil && f.EnumType == nil }
