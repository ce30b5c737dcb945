package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_Uint(t *testing.T) {
	e := NewEncoder()
	require.NoError(t, e.Uint(0xAABBCCDD, 4))
	require.NoError(t, e.Uint(1, 8))
	assert.Equal(t, []byte{0xDD, 0xCC, 0xBB, 0xAA, 1, 0, 0, 0, 0, 0, 0, 0}, e.Bytes())
}

func TestEncoder_UintBE(t *testing.T) {
	e := NewEncoder()
	require.NoError(t, e.UintBE(0xAABBCCDD, 4))
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, e.Bytes())
}

func TestEncoder_UnsupportedWidth(t *testing.T) {
	e := NewEncoder()
	require.Error(t, e.Uint(1, 3))
}

func TestEncoder_BoolAndByte(t *testing.T) {
	e := NewEncoder()
	e.Bool(true)
	e.Bool(false)
	e.Byte(0x07)
	assert.Equal(t, []byte{1, 0, 0x07}, e.Bytes())
}

func TestEncoder_Str(t *testing.T) {
	e := NewEncoder()
	e.Str("abc")
	assert.Equal(t, []byte{3, 0, 0, 0, 0, 0, 0, 0, 'a', 'b', 'c'}, e.Bytes())
}

func TestEncoder_Borsh(t *testing.T) {
	e := NewEncoder()
	e.Borsh("abc")
	assert.Equal(t, []byte{3, 0, 0, 0, 'a', 'b', 'c'}, e.Bytes())
}

func TestEncoder_RawBytes(t *testing.T) {
	e := NewEncoder()
	e.RawBytes([]byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3}, e.Bytes())
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	e := NewEncoder()
	require.NoError(t, e.Uint(42, 8))
	e.Str("seed")
	e.Byte(9)
	e.Bool(true)
	e.RawBytes([]byte{0xAA, 0xBB})

	d := NewDecoder(e.Bytes())

	v, err := d.Uint(8)
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)

	s, err := d.Str()
	require.NoError(t, err)
	assert.Equal(t, "seed", s)

	b, err := d.Byte()
	require.NoError(t, err)
	assert.EqualValues(t, 9, b)

	bo, err := d.Bool()
	require.NoError(t, err)
	assert.True(t, bo)

	raw, err := d.RawBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, raw)

	assert.Equal(t, 0, d.Remaining())
}

func TestDecoder_TruncatedPayload(t *testing.T) {
	d := NewDecoder([]byte{1, 2})
	_, err := d.Uint(4)
	require.Error(t, err)
}
