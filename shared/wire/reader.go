package wire

import (
	"errors"
	"math"
)

// ErrUnexpectedEnd is returned when a read would run past the end of the
// supplied buffer. Decoders treat it as "keep what was decoded so far, apply
// nothing after".
var ErrUnexpectedEnd = errors.New("wire: unexpected end of buffer")

// Reader consumes primitive values from a byte buffer. Every read is bounds
// checked; a failed read leaves the position unchanged.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps data for reading. The reader does not copy the slice.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrUnexpectedEnd
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadVLE reads a variable-length unsigned integer written by WriteVLE.
func (r *Reader) ReadVLE() (uint32, error) {
	var v uint32
	start := r.pos
	for shift := uint(0); shift < 35; shift += 7 {
		if r.pos >= len(r.buf) {
			r.pos = start
			return 0, ErrUnexpectedEnd
		}
		b := r.buf[r.pos]
		r.pos++
		v |= uint32(b&0x7f) << shift
		if b < 0x80 {
			return v, nil
		}
	}
	r.pos = start
	return 0, errors.New("wire: malformed VLE value")
}

// ReadUByte reads a single byte.
func (r *Reader) ReadUByte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUShort reads a 16-bit unsigned integer, little-endian.
func (r *Reader) ReadUShort() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// ReadShort reads a 16-bit signed integer, little-endian.
func (r *Reader) ReadShort() (int16, error) {
	v, err := r.ReadUShort()
	return int16(v), err
}

// ReadUInt reads a 32-bit unsigned integer, little-endian.
func (r *Reader) ReadUInt() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// ReadInt reads a 32-bit signed integer, little-endian.
func (r *Reader) ReadInt() (int32, error) {
	v, err := r.ReadUInt()
	return int32(v), err
}

// ReadFloat reads a 32-bit IEEE 754 float, little-endian.
func (r *Reader) ReadFloat() (float32, error) {
	v, err := r.ReadUInt()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadBool reads a single byte as a bool (nonzero = true).
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadUByte()
	return b != 0, err
}

// ReadString reads a VLE length prefix followed by that many raw bytes.
func (r *Reader) ReadString() (string, error) {
	start := r.pos
	n, err := r.ReadVLE()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		r.pos = start
		return "", err
	}
	return string(b), nil
}
