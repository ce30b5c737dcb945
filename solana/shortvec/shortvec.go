// Package shortvec implements Solana's compact-u16 ("short vec") length
// prefix: a 1-3 byte little-endian variable length integer where the low 7
// bits of each byte carry data and the high bit signals continuation.
package shortvec

import (
	"fmt"
	"io"
)

// MaxValue is the largest value representable in a 3-byte compact-u16.
const MaxValue = 1<<21 - 1

// EncodeLen writes the compact-u16 encoding of len to w. len must be
// non-negative; values above MaxValue still encode (into 4+ bytes) but
// are rejected by DecodeLen, since they fall outside the canonical
// compact-u16 range Solana messages use.
func EncodeLen(w io.Writer, len int) (n int, err error) {
	if len < 0 {
		return 0, fmt.Errorf("len out of range: %d", len)
	}

	written := 0
	valBuf := make([]byte, 1)

	for {
		valBuf[0] = byte(len & 0x7f)
		len >>= 7
		if len == 0 {
			n, err := w.Write(valBuf)
			written += n
			return written, err
		}

		valBuf[0] |= 0x80
		n, err := w.Write(valBuf)
		written += n
		if err != nil {
			return written, err
		}
	}
}

// DecodeLen reads a compact-u16 encoded length from r.
func DecodeLen(r io.Reader) (val int, err error) {
	var offset int
	valBuf := make([]byte, 1)

	for {
		if _, err := io.ReadFull(r, valBuf); err != nil {
			return 0, err
		}

		val |= int(valBuf[0]&0x7f) << (offset * 7)
		offset++

		if valBuf[0]&0x80 == 0 {
			break
		}
	}

	if offset > 3 {
		return 0, fmt.Errorf("invalid compact-u16 prefix: more than 3 bytes")
	}

	return val, nil
}
