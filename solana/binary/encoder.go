// Package binary implements the primitive field encoding used by every
// program builder's instruction data blob: fixed-width little/big-endian
// integers, length-prefixed strings in the two layouts Solana programs use,
// raw bytes, and single-byte bools/enums.
//
// It's a streaming encoder rather than a fixed set of per-width put
// helpers, so it can be reused across every builder in solana/system,
// solana/token, and solana/tokenswap.
package binary

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Encoder accumulates instruction data field by field.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the accumulated instruction data.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Uint writes v using width bytes, little-endian. width must be 1, 2, 4, or
// 8; a mismatched value (one that doesn't fit in width bytes) is still
// written truncated — callers are trusted to pass in-range values.
func (e *Encoder) Uint(v uint64, width int) error {
	return e.uint(v, width, binary.LittleEndian)
}

// UintBE writes v using width bytes, big-endian.
func (e *Encoder) UintBE(v uint64, width int) error {
	return e.uint(v, width, binary.BigEndian)
}

func (e *Encoder) uint(v uint64, width int, order binary.ByteOrder) error {
	switch width {
	case 1:
		e.buf.WriteByte(byte(v))
	case 2:
		var b [2]byte
		order.PutUint16(b[:], uint16(v))
		e.buf.Write(b[:])
	case 4:
		var b [4]byte
		order.PutUint32(b[:], uint32(v))
		e.buf.Write(b[:])
	case 8:
		var b [8]byte
		order.PutUint64(b[:], v)
		e.buf.Write(b[:])
	default:
		return errors.Errorf("unsupported integer width: %d", width)
	}
	return nil
}

// Byte writes a single byte, used for bare integers (enum discriminants,
// option-presence flags) rather than the generic width-based Uint.
func (e *Encoder) Byte(v byte) {
	e.buf.WriteByte(v)
}

// Bool writes a single byte, 0 or 1.
func (e *Encoder) Bool(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

// RawBytes writes raw bytes verbatim, with no length prefix.
func (e *Encoder) RawBytes(b []byte) {
	e.buf.Write(b)
}

// Str writes s in the "str" layout: a 4-byte little-endian length followed
// by 4 zero bytes (together forming a 64-bit length field with the high
// 32 bits always zero), followed by the UTF-8 bytes. This mirrors the
// source layout used for seed-string fields in System program instructions.
func (e *Encoder) Str(s string) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
	e.buf.Write(lenBuf[:])
	e.buf.Write(make([]byte, 4))
	e.buf.WriteString(s)
}

// Borsh writes s in the "borsh" layout: a 4-byte little-endian length
// followed directly by the bytes, with no padding.
func (e *Encoder) Borsh(s string) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
	e.buf.Write(lenBuf[:])
	e.buf.WriteString(s)
}
