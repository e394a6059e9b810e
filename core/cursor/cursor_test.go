package cursor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_ReadsBigEndianAndAdvances(t *testing.T) {
	buf := []byte{
		0x12, 0x34, // uint16
		0xDE, 0xAD, 0xBE, 0xEF, // uint32
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // uint64
	}
	c := New(buf, 0)

	v16, err := c.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), v16)
	require.Equal(t, 2, c.Position())

	v32, err := c.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v32)
	require.Equal(t, 6, c.Position())

	v64, err := c.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), v64)
	require.Equal(t, len(buf), c.Position())
}

func TestCursor_StartsAtOffset(t *testing.T) {
	c := New([]byte{0xFF, 0xFF, 0x00, 0x2A}, 2)
	v, err := c.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(42), v)
}

func TestCursor_OutOfBounds(t *testing.T) {
	c := New([]byte{0x00, 0x01, 0x02}, 0)

	_, err := c.Uint32()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOutOfBounds))
	require.Equal(t, 0, c.Position(), "failed read must not advance the cursor")

	_, err = c.Uint16()
	require.NoError(t, err)
	_, err = c.Uint16()
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = New([]byte{0x00}, 5).Bytes(0)
	require.ErrorIs(t, err, ErrOutOfBounds, "a start offset past the end is out of bounds")

	_, err = New([]byte{0x00}, 0).Bytes(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCursor_Bytes(t *testing.T) {
	c := New([]byte("infimum\x00supremum"), 8)
	b, err := c.Bytes(8)
	require.NoError(t, err)
	require.Equal(t, []byte("supremum"), b)
	require.Equal(t, 16, c.Position())
}
