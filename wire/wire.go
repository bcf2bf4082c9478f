// Package wire implements the low-level binary codec that generated
// protoscript code calls into: varint and zigzag integer encoding, fixed
// 32/64-bit words, length-delimited framing, and UTF-8 string handling.
//
// The package has no dependency on the descriptor walker or emitter; it is
// a self-contained runtime, mirroring the split between protoc-gen-go's
// code generator and the protobuf3 runtime it calls into.
package wire

import "errors"

// WireType identifies how a field's payload is framed on the wire.
type WireType uint8

const (
	WireVarint WireType = 0
	WireFixed64 WireType = 1
	WireBytes WireType = 2
	// WireStartGroup and WireEndGroup exist only so SkipField can reject
	// them explicitly; proto2 groups are out of scope.
	WireStartGroup WireType = 3
	WireEndGroup   WireType = 4
	WireFixed32    WireType = 5
)

// ErrorKind classifies a decode failure so callers can branch on it
// without parsing error strings.
type ErrorKind int

const (
	_ ErrorKind = iota
	MalformedVarint
	PastEnd
	InvalidLength
	UnsupportedWireType
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedVarint:
		return "malformed varint"
	case PastEnd:
		return "read past end of buffer"
	case InvalidLength:
		return "invalid length-delimited field length"
	case UnsupportedWireType:
		return "unsupported wire type"
	default:
		return "unknown wire error"
	}
}

// DecodeError is returned by Decoder methods on malformed input. No
// partial result is ever returned alongside a non-nil DecodeError.
type DecodeError struct {
	Kind ErrorKind
	Off  int
}

func (e *DecodeError) Error() string {
	return e.Kind.String()
}

var errOverflow = errors.New("wire: varint overflow")

// Tag combines a field number and wire type into a field tag
// (field_number<<3 | wire_type); SplitTag splits a tag into its parts.
func Tag(num int32, wt WireType) uint64 {
	return uint64(num)<<3 | uint64(wt)
}

func SplitTag(tag uint64) (num int32, wt WireType) {
	return int32(tag >> 3), WireType(tag & 0x7)
}
