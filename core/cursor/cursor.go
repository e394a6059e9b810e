// Package cursor provides a sequential, bounds-checked reader over a page
// buffer. All multi-byte integers are read big-endian, as they are stored on
// disk.
package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a read would go past the end of the buffer.
var ErrOutOfBounds = errors.New("cursor read out of bounds")

// Cursor tracks a read position within a buffer. It never moves backwards;
// create a new Cursor to re-read from an earlier offset.
type Cursor struct {
	buf []byte
	pos int
}

// New returns a Cursor over buf positioned at offset.
func New(buf []byte, offset int) *Cursor {
	return &Cursor{buf: buf, pos: offset}
}

// Position returns the offset of the next byte to be read.
func (c *Cursor) Position() int { return c.pos }

// take returns the next n bytes and advances. On failure the position is left
// unchanged.
func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.pos < 0 || c.pos > len(c.buf) || len(c.buf)-c.pos < n {
		return nil, fmt.Errorf("%w: %d bytes at offset %d (buffer is %d bytes)", ErrOutOfBounds, n, c.pos, len(c.buf))
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Bytes returns the next n bytes. The returned slice aliases the buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n)
}

func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *Cursor) Uint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
