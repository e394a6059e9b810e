package page

import (
	"fmt"

	"github.com/sushant-115/innopage/core/cursor"
)

// FilHeader is the 38-byte header shared by every page type.
type FilHeader struct {
	Checksum uint32
	Offset   uint32 // page number within the space
	Prev     uint32
	HasPrev  bool
	Next     uint32
	HasNext  bool
	LSN      uint64
	Type     PageType
	FlushLSN uint64
	SpaceID  uint32
}

// FilTrailer is the 8-byte trailer at the end of every page.
type FilTrailer struct {
	Checksum uint32
	LowLSN   uint32 // low 32 bits of the header LSN
}

// maybeUndefined converts a raw prev/next link into an optional page number.
func maybeUndefined(v uint32) (uint32, bool) {
	if v == undefinedPageNo {
		return 0, false
	}
	return v, true
}

// decodeFilHeader reads the fil header field by field from c.
func decodeFilHeader(c *cursor.Cursor) (FilHeader, error) {
	var (
		h         FilHeader
		err       error
		prev, nxt uint32
		typ       uint16
	)
	if h.Checksum, err = c.Uint32(); err != nil {
		return FilHeader{}, fmt.Errorf("checksum: %w", err)
	}
	if h.Offset, err = c.Uint32(); err != nil {
		return FilHeader{}, fmt.Errorf("page offset: %w", err)
	}
	if prev, err = c.Uint32(); err != nil {
		return FilHeader{}, fmt.Errorf("prev: %w", err)
	}
	h.Prev, h.HasPrev = maybeUndefined(prev)
	if nxt, err = c.Uint32(); err != nil {
		return FilHeader{}, fmt.Errorf("next: %w", err)
	}
	h.Next, h.HasNext = maybeUndefined(nxt)
	if h.LSN, err = c.Uint64(); err != nil {
		return FilHeader{}, fmt.Errorf("lsn: %w", err)
	}
	if typ, err = c.Uint16(); err != nil {
		return FilHeader{}, fmt.Errorf("page type: %w", err)
	}
	h.Type = PageType(typ)
	if h.FlushLSN, err = c.Uint64(); err != nil {
		return FilHeader{}, fmt.Errorf("flush lsn: %w", err)
	}
	if h.SpaceID, err = c.Uint32(); err != nil {
		return FilHeader{}, fmt.Errorf("space id: %w", err)
	}
	return h, nil
}

func decodeFilTrailer(c *cursor.Cursor) (FilTrailer, error) {
	var (
		t   FilTrailer
		err error
	)
	if t.Checksum, err = c.Uint32(); err != nil {
		return FilTrailer{}, fmt.Errorf("trailer checksum: %w", err)
	}
	if t.LowLSN, err = c.Uint32(); err != nil {
		return FilTrailer{}, fmt.Errorf("trailer lsn: %w", err)
	}
	return t, nil
}
