// Package page wraps raw 16 KiB pages read from a tablespace file, decodes
// the fil header every page starts with and hands the buffer to a
// type-specific decoder when one is registered for the page's type.
package page

import (
	"fmt"

	"github.com/sushant-115/innopage/core/cursor"
	"go.uber.org/zap"
)

// Decoder is implemented by the generic Page and by every specialized page
// decoder. Specializations usually embed *Page to inherit it.
type Decoder interface {
	FilHeader() FilHeader
	FilTrailer() FilTrailer
	Type() PageType
	Offset() uint32
	Prev() (uint32, bool)
	Next() (uint32, bool)
	Data(offset, length int) ([]byte, error)
	Cursor(offset int) *cursor.Cursor
}

// Page is one immutable page buffer together with its decoded fil header.
// The buffer is not copied; callers must not modify it after New.
type Page struct {
	buf     []byte
	header  FilHeader
	trailer FilTrailer
}

var _ Decoder = (*Page)(nil)

// New validates the buffer size and decodes the fil header and trailer.
// The header is decoded once here and cached for the lifetime of the Page,
// so a Page may be shared between goroutines without further locking.
func New(buf []byte) (*Page, error) {
	if len(buf) != PageSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrPageSizeMismatch, PageSize, len(buf))
	}
	p := &Page{buf: buf}

	h, err := decodeFilHeader(p.Cursor(FilHeaderStart))
	if err != nil {
		return nil, fmt.Errorf("decode fil header: %w", err)
	}
	t, err := decodeFilTrailer(p.Cursor(FilTrailerStart))
	if err != nil {
		return nil, fmt.Errorf("decode fil trailer: %w", err)
	}
	p.header = h
	p.trailer = t
	return p, nil
}

// Data returns the bytes in [offset, offset+length). The slice aliases the
// page buffer.
func (p *Page) Data(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset > len(p.buf) || length > len(p.buf)-offset {
		return nil, fmt.Errorf("%w: range [%d, %d) exceeds %d-byte page", ErrOutOfBounds, offset, offset+length, len(p.buf))
	}
	return p.buf[offset : offset+length], nil
}

// Cursor returns a new cursor over the page positioned at offset.
func (p *Page) Cursor(offset int) *cursor.Cursor {
	return cursor.New(p.buf, offset)
}

// FilHeader returns the header decoded by New.
func (p *Page) FilHeader() FilHeader { return p.header }

// FilTrailer returns the trailer decoded by New.
func (p *Page) FilTrailer() FilTrailer { return p.trailer }

// Type returns the page type code from the header.
func (p *Page) Type() PageType { return p.header.Type }

// Offset returns the page number recorded in the header.
func (p *Page) Offset() uint32 { return p.header.Offset }

// Prev returns the previous page in the list, if there is one.
func (p *Page) Prev() (uint32, bool) { return p.header.Prev, p.header.HasPrev }

// Next returns the next page in the list, if there is one.
func (p *Page) Next() (uint32, bool) { return p.header.Next, p.header.HasNext }

// LSNConsistent reports whether the trailer's low LSN matches the header LSN.
// A mismatch usually means the page was torn by a partial write.
func (p *Page) LSNConsistent() bool {
	return p.trailer.LowLSN == uint32(p.header.LSN)
}

// Dump logs the fil header at debug level.
func (p *Page) Dump(logger *zap.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("fil header", FilHeaderFields(p.header)...)
}

// FilHeaderFields renders h as structured log fields. Missing links are
// logged as null.
func FilHeaderFields(h FilHeader) []zap.Field {
	fields := []zap.Field{
		zap.Uint32("checksum", h.Checksum),
		zap.Uint32("offset", h.Offset),
		zap.Uint64("lsn", h.LSN),
		zap.Stringer("type", h.Type),
		zap.Uint64("flush_lsn", h.FlushLSN),
		zap.Uint32("space_id", h.SpaceID),
	}
	if h.HasPrev {
		fields = append(fields, zap.Uint32("prev", h.Prev))
	} else {
		fields = append(fields, zap.Reflect("prev", nil))
	}
	if h.HasNext {
		fields = append(fields, zap.Uint32("next", h.Next))
	} else {
		fields = append(fields, zap.Reflect("next", nil))
	}
	return fields
}
