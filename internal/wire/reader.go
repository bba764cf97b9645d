package wire

import (
	"encoding/binary"
	"math"
)

// Reader is a forward cursor over one packet's payload bytes. The header
// has already been consumed by the frame reader before a Reader is handed
// to a decoder.
//
// Version is set once by the session orchestrator before any handler in
// a given bundle is invoked, and gates fields tagged "present iff version
// >= / < (major, minor)".
type Reader struct {
	buf     []byte
	off     int
	Version PacketVersion
}

// PacketVersion identifies the negotiated packet-set version for gating
// version-threshold fields. The zero value compares less than every real
// version, so ungated code that forgets to set it fails closed.
type PacketVersion struct {
	Major int
	Minor int
}

// AtLeast reports whether v is >= other.
func (v PacketVersion) AtLeast(other PacketVersion) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

// Before reports whether v is < other.
func (v PacketVersion) Before(other PacketVersion) bool {
	return !v.AtLeast(other)
}

// NewReader wraps buf for decoding. The version defaults to the zero
// value; callers that care about version-gated fields must set r.Version.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Offset returns the current read offset, for rewinding with Seek.
func (r *Reader) Offset() int {
	return r.off
}

// Seek rewinds or advances the cursor to an absolute offset.
func (r *Reader) Seek(offset int) {
	r.off = offset
}

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return &ErrShortFrame{Want: n, Have: r.Remaining()}
	}
	return nil
}

// Bytes returns n raw bytes and advances the cursor.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	_, err := r.Bytes(n)
	return err
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

func (r *Reader) U16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) U64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) F64() (float64, error) {
	v, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// FixedString reads n bytes; the value is the prefix up to the first NUL,
// the remainder is discarded per the wire string convention.
func (r *Reader) FixedString(n int) (string, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	k := indexNUL(b)
	if k < 0 {
		return string(b), nil
	}
	return string(b[:k]), nil
}

func indexNUL(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}

// RemainingString consumes every remaining byte as a string.
func (r *Reader) RemainingString() (string, error) {
	b, err := r.Bytes(r.Remaining())
	if err != nil {
		return "", err
	}
	return string(trimNUL(b)), nil
}

// RemainingStringMinusOne consumes every remaining byte except the last
// one, for the one packet family with a stray trailing byte.
func (r *Reader) RemainingStringMinusOne() (string, error) {
	n := r.Remaining() - 1
	if n < 0 {
		return "", &ErrShortFrame{Want: 1, Have: r.Remaining()}
	}
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	if err := r.Skip(1); err != nil {
		return "", err
	}
	return string(trimNUL(b)), nil
}

func trimNUL(b []byte) []byte {
	if k := indexNUL(b); k >= 0 {
		return b[:k]
	}
	return b
}

// BitSet8/16/32 read a bitflag set backed by the given integer width. The
// caller interprets individual bits; wire doesn't know the flag names.
func (r *Reader) BitSet8() (uint8, error)   { return r.U8() }
func (r *Reader) BitSet16() (uint16, error) { return r.U16() }
func (r *Reader) BitSet32() (uint32, error) { return r.U32() }

// StatValue decodes the packed (i16 base, i16 bonus) composite: four i16
// slots on the wire, two of which are padding. Slot 0 holds base and
// slot 1 holds bonus, matching the historical layout observed on both
// packet-set versions.
func (r *Reader) StatValue() (base int16, bonus int16, err error) {
	slots := make([]int16, 4)
	for i := range slots {
		v, err := r.I16()
		if err != nil {
			return 0, 0, err
		}
		slots[i] = v
	}
	// slots[0]=base, slots[1]=bonus, slots[2..3]=padding.
	return slots[0], slots[1], nil
}
