// Package wire implements the byte-level primitives used by the animation
// replication format: variable-length unsigned integers, little-endian
// fixed-width integers, length-prefixed strings and stable name hashing.
// It must have zero dependencies on the rest of the engine so the dedicated
// server binary and any external tooling can share it.
package wire

import "math"

// Writer appends primitive values to a growing byte buffer.
type Writer struct {
	buf []byte
}

// Bytes returns the accumulated buffer. The slice is owned by the writer
// until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset discards the accumulated buffer, keeping capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WriteVLE writes v using 7 bits per byte, least significant group first,
// with the continuation bit set on every byte except the last.
func (w *Writer) WriteVLE(v uint32) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// WriteUByte writes a single byte.
func (w *Writer) WriteUByte(v byte) {
	w.buf = append(w.buf, v)
}

// WriteUShort writes a 16-bit unsigned integer, little-endian.
func (w *Writer) WriteUShort(v uint16) {
	w.buf = append(w.buf, byte(v), byte(v>>8))
}

// WriteShort writes a 16-bit signed integer, little-endian.
func (w *Writer) WriteShort(v int16) {
	w.WriteUShort(uint16(v))
}

// WriteUInt writes a 32-bit unsigned integer, little-endian.
func (w *Writer) WriteUInt(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// WriteInt writes a 32-bit signed integer, little-endian.
func (w *Writer) WriteInt(v int32) {
	w.WriteUInt(uint32(v))
}

// WriteFloat writes a 32-bit IEEE 754 float, little-endian.
func (w *Writer) WriteFloat(v float32) {
	w.WriteUInt(math.Float32bits(v))
}

// WriteBool writes a bool as a single 0/1 byte.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUByte(1)
	} else {
		w.WriteUByte(0)
	}
}

// WriteString writes a VLE length prefix followed by the raw bytes.
func (w *Writer) WriteString(s string) {
	w.WriteVLE(uint32(len(s)))
	w.buf = append(w.buf, s...)
}
