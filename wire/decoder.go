package wire

import (
	"math"
	"strings"
	"unicode/utf8"
)

// maxVarintBytes is the longest a well-formed varint may be: ceil(64/7).
const maxVarintBytes = 10

// Decoder reads framed protobuf values out of a bounded byte window. It is
// deliberately not safe for concurrent use; callers that parallelize across
// files must give each worker its own Decoder (see DecoderPool).
type Decoder struct {
	buf    []byte
	start  int
	end    int
	cursor int
	err    *DecodeError
}

// NewDecoder allocates a Decoder already seated on buf.
func NewDecoder(buf []byte) *Decoder {
	d := &Decoder{}
	d.SetBlock(buf, 0, len(buf))
	return d
}

// SetBlock seats the decoder on a new window without allocating, so pooled
// Decoders can be reused across messages.
func (d *Decoder) SetBlock(buf []byte, start, end int) {
	d.buf = buf
	d.start = start
	d.end = end
	d.cursor = start
	d.err = nil
}

// Clear detaches the decoder from its buffer, dropping the reference so a
// pooled Decoder does not keep the underlying byte slice alive.
func (d *Decoder) Clear() {
	d.buf = nil
	d.start, d.end, d.cursor = 0, 0, 0
	d.err = nil
}

// AtEnd reports whether the cursor has consumed the entire window.
func (d *Decoder) AtEnd() bool { return d.cursor >= d.end }

// PastEnd reports whether a prior read attempted to consume bytes beyond
// the window (equivalently, whether the decoder is in an error state from
// overrunning its bounds).
func (d *Decoder) PastEnd() bool {
	return d.err != nil && d.err.Kind == PastEnd
}

// Err returns the first error encountered, or nil.
func (d *Decoder) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

func (d *Decoder) fail(kind ErrorKind) {
	if d.err == nil {
		d.err = &DecodeError{Kind: kind, Off: d.cursor}
	}
}

func (d *Decoder) byte() (byte, bool) {
	if d.cursor >= d.end {
		d.fail(PastEnd)
		return 0, false
	}
	b := d.buf[d.cursor]
	d.cursor++
	return b, true
}

// ReadVarint reads a base-128 varint of up to 64 bits. A varint that does
// not terminate within 10 bytes is malformed.
func (d *Decoder) ReadVarint() (uint64, bool) {
	var x uint64
	for i := 0; i < maxVarintBytes; i++ {
		b, ok := d.byte()
		if !ok {
			return 0, false
		}
		if i == maxVarintBytes-1 && b > 1 {
			// The 10th byte may only carry the single leftover high bit of
			// a full 64-bit value; anything else means the value needs an
			// 11th byte and is malformed.
			d.fail(MalformedVarint)
			return 0, false
		}
		x |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return x, true
		}
	}
	d.fail(MalformedVarint)
	return 0, false
}

// ReadVarint32Fast reads a varint known to represent a 32-bit value and
// returns its low 32 bits. It reads the whole varint (up to ten bytes);
// when more than five bytes were consumed, the high 32 bits must be all
// zero or a clean sign-extension run (all ones, as a negative int32
// produces), otherwise the varint is rejected as malformed instead of
// silently truncated.
func (d *Decoder) ReadVarint32Fast() (uint32, bool) {
	start := d.cursor
	v, ok := d.ReadVarint()
	if !ok {
		return 0, false
	}
	consumed := d.cursor - start
	if consumed > 5 && v>>32 != 0 && v>>32 != 0xffffffff {
		// More than 5 bytes were needed and the high half isn't a clean
		// sign-extension of a negative int32 — the value does not fit.
		d.fail(MalformedVarint)
		return 0, false
	}
	return uint32(v), true
}

// ReadZigzag32 decodes a zigzag-mapped 32-bit signed integer.
func (d *Decoder) ReadZigzag32() (int32, bool) {
	u, ok := d.ReadVarint()
	if !ok {
		return 0, false
	}
	n := uint32(u)
	return int32(n>>1) ^ -int32(n&1), true
}

// ReadZigzag64 decodes a zigzag-mapped 64-bit signed integer.
func (d *Decoder) ReadZigzag64() (int64, bool) {
	u, ok := d.ReadVarint()
	if !ok {
		return 0, false
	}
	return int64(u>>1) ^ -int64(u&1), true
}

// ReadFixed32 reads a little-endian 32-bit word.
func (d *Decoder) ReadFixed32() (uint32, bool) {
	if d.cursor+4 > d.end {
		d.fail(PastEnd)
		return 0, false
	}
	b := d.buf[d.cursor : d.cursor+4]
	d.cursor += 4
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, true
}

// ReadFixed64 reads a little-endian 64-bit word.
func (d *Decoder) ReadFixed64() (uint64, bool) {
	if d.cursor+8 > d.end {
		d.fail(PastEnd)
		return 0, false
	}
	b := d.buf[d.cursor : d.cursor+8]
	d.cursor += 8
	lo := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24
	hi := uint64(b[4]) | uint64(b[5])<<8 | uint64(b[6])<<16 | uint64(b[7])<<24
	return lo | hi<<32, true
}

// ReadFloat decodes an IEEE-754 32-bit float.
func (d *Decoder) ReadFloat() (float32, bool) {
	bits, ok := d.ReadFixed32()
	if !ok {
		return 0, false
	}
	return math.Float32frombits(bits), true
}

// ReadDouble decodes an IEEE-754 64-bit float.
func (d *Decoder) ReadDouble() (float64, bool) {
	bits, ok := d.ReadFixed64()
	if !ok {
		return 0, false
	}
	return math.Float64frombits(bits), true
}

// ReadBool decodes a varint as a boolean (any nonzero value is true).
func (d *Decoder) ReadBool() (bool, bool) {
	u, ok := d.ReadVarint()
	if !ok {
		return false, false
	}
	return u != 0, true
}

// ReadBytes reads a length-prefixed byte slice, returning a view over the
// source buffer rather than a copy.
func (d *Decoder) ReadBytes() ([]byte, bool) {
	n, ok := d.ReadVarint()
	if !ok {
		return nil, false
	}
	length := int(n)
	if length < 0 || int64(length) != int64(n) {
		d.fail(InvalidLength)
		return nil, false
	}
	if d.cursor+length < d.cursor || d.cursor+length > d.end {
		d.fail(PastEnd)
		return nil, false
	}
	b := d.buf[d.cursor : d.cursor+length]
	d.cursor += length
	return b, true
}

// ReadString reads a length-prefixed UTF-8 string. Decoding walks code
// points by hand (rather than a bulk string(b) cast) so malformed
// continuation sequences are skipped instead of propagated as replacement
// characters; valid sequences, including 4-byte ones, are copied through
// unchanged since Go strings are natively UTF-8 and have no surrogate-pair
// concept to reproduce.
func (d *Decoder) ReadString() (string, bool) {
	b, ok := d.ReadBytes()
	if !ok {
		return "", false
	}
	return decodeUTF8(b), true
}

func decodeUTF8(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			// Out-of-sync continuation byte with no lead byte: skip it.
			i++
			continue
		}
		sb.WriteRune(r)
		i += size
	}
	return sb.String()
}

// SkipField consumes exactly the bytes belonging to the current field for
// the given wire type, without materializing a value. The proto2 group
// wire type is not supported and fails with UnsupportedWireType.
func (d *Decoder) SkipField(wt WireType) bool {
	switch wt {
	case WireVarint:
		_, ok := d.ReadVarint()
		return ok
	case WireFixed64:
		_, ok := d.ReadFixed64()
		return ok
	case WireBytes:
		_, ok := d.ReadBytes()
		return ok
	case WireFixed32:
		_, ok := d.ReadFixed32()
		return ok
	default:
		d.fail(UnsupportedWireType)
		return false
	}
}

// ReadTag reads a field tag and reports whether the cursor has reached the
// end of the window (in which case there is no tag to read).
func (d *Decoder) ReadTag() (num int32, wt WireType, ok bool) {
	if d.AtEnd() {
		return 0, 0, false
	}
	u, ok := d.ReadVarint()
	if !ok {
		return 0, 0, false
	}
	num, wt = SplitTag(u)
	return num, wt, true
}
