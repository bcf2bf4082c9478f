package walker

import (
	descriptorpb "google.golang.org/protobuf/types/descriptorpb"
)

// scalarTag holds everything the type-classification table needs to know
// about a scalar proto field type: its wire-codec method tags, its
// generated TS type, and its proto3 zero value literal.
type scalarTag struct {
	read, write string
	packable    bool // whether a repeated field of this type packs by default
	tsType      string
	tsTypeJSON  string
	zeroLiteral string
}

// scalarTags is keyed by descriptorpb.FieldDescriptorProto_Type. Message,
// group, and enum types are handled separately since they need IR-level
// resolution rather than a fixed literal.
var scalarTags = map[descriptorpb.FieldDescriptorProto_Type]scalarTag{
	descriptorpb.FieldDescriptorProto_TYPE_DOUBLE: {"readDouble", "writeDouble", true, "number", "number", "0"},
	descriptorpb.FieldDescriptorProto_TYPE_FLOAT:  {"readFloat", "writeFloat", true, "number", "number", "0"},
	descriptorpb.FieldDescriptorProto_TYPE_INT64:  {"readInt64", "writeInt64", true, "bigint", "string", "0n"},
	descriptorpb.FieldDescriptorProto_TYPE_UINT64: {"readUint64", "writeUint64", true, "bigint", "string", "0n"},
	descriptorpb.FieldDescriptorProto_TYPE_INT32:  {"readInt32", "writeInt32", true, "number", "number", "0"},
	descriptorpb.FieldDescriptorProto_TYPE_FIXED64: {"readFixed64", "writeFixed64", true, "bigint", "string", "0n"},
	descriptorpb.FieldDescriptorProto_TYPE_FIXED32: {"readFixed32", "writeFixed32", true, "number", "number", "0"},
	descriptorpb.FieldDescriptorProto_TYPE_BOOL:    {"readBool", "writeBool", true, "boolean", "boolean", "false"},
	descriptorpb.FieldDescriptorProto_TYPE_STRING:  {"readString", "writeString", false, "string", "string", `""`},
	descriptorpb.FieldDescriptorProto_TYPE_BYTES:   {"readBytes", "writeBytes", false, "Uint8Array", "string", "new Uint8Array(0)"},
	descriptorpb.FieldDescriptorProto_TYPE_UINT32:  {"readUint32", "writeUint32", true, "number", "number", "0"},
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED32: {"readSfixed32", "writeSfixed32", true, "number", "number", "0"},
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED64: {"readSfixed64", "writeSfixed64", true, "bigint", "string", "0n"},
	descriptorpb.FieldDescriptorProto_TYPE_SINT32:   {"readSint32", "writeSint32", true, "number", "number", "0"},
	descriptorpb.FieldDescriptorProto_TYPE_SINT64:   {"readSint64", "writeSint64", true, "bigint", "string", "0n"},
}

// packedReadTag returns the readPacked tag for a repeated scalar: present
// whenever the scalar type packs by default, so the decoder tolerates both
// packed and unpacked encodings.
func packedReadTag(t descriptorpb.FieldDescriptorProto_Type) (string, bool) {
	tag, ok := scalarTags[t]
	if !ok || !tag.packable {
		return "", false
	}
	return "readPacked", true
}
