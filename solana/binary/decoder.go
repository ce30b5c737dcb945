package binary

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Decoder reads primitive fields off a fixed byte slice in order, tracking
// its own cursor so callers don't have to thread an offset by hand.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder wraps b for sequential reads. b is not copied; callers must
// not mutate it while decoding.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

func (d *Decoder) take(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "need %d bytes, have %d", n, d.Remaining())
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// Uint reads width bytes, little-endian. width must be 1, 2, 4, or 8.
func (d *Decoder) Uint(width int) (uint64, error) {
	return d.uint(width, binary.LittleEndian)
}

// UintBE reads width bytes, big-endian.
func (d *Decoder) UintBE(width int) (uint64, error) {
	return d.uint(width, binary.BigEndian)
}

func (d *Decoder) uint(width int, order binary.ByteOrder) (uint64, error) {
	b, err := d.take(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(order.Uint16(b)), nil
	case 4:
		return uint64(order.Uint32(b)), nil
	case 8:
		return order.Uint64(b), nil
	default:
		return 0, errors.Errorf("unsupported integer width: %d", width)
	}
}

// Byte reads a single byte.
func (d *Decoder) Byte() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads a single byte and interprets it as a boolean; any nonzero
// byte is true, matching the encoder's 0/1 convention loosely (on-chain
// producers sometimes write nonzero flag bytes other than 1).
func (d *Decoder) Bool() (bool, error) {
	b, err := d.Byte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// RawBytes reads n bytes verbatim.
func (d *Decoder) RawBytes(n int) ([]byte, error) {
	b, err := d.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Str reads the "str" layout: a 4-byte little-endian length, 4 zero bytes,
// then that many UTF-8 bytes.
func (d *Decoder) Str() (string, error) {
	lenBuf, err := d.take(4)
	if err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint32(lenBuf)
	if _, err := d.take(4); err != nil {
		return "", err
	}
	b, err := d.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Borsh reads the "borsh" layout: a 4-byte little-endian length followed
// directly by that many bytes.
func (d *Decoder) Borsh() (string, error) {
	lenBuf, err := d.take(4)
	if err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint32(lenBuf)
	b, err := d.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
