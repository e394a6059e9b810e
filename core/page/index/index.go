// Package index registers the decoder for B-tree (INDEX) pages. Importing it
// for side effects is enough to make page.Parse return *index.Page for
// INDEX pages.
package index

import (
	"fmt"

	"github.com/sushant-115/innopage/core/page"
)

// Index header layout, relative to the end of the fil header.
const (
	HeaderStart = page.FilHeaderEnd
	HeaderSize  = 36

	offNumDirSlots = 0
	offNumHeap     = 4
	offNumRecords  = 16
	offLevel       = 26
	offIndexID     = 28

	compactFlag = 0x8000
)

// Header holds the index header fields needed to place a page in its tree.
type Header struct {
	NumDirSlots uint16
	NumHeap     uint16
	Compact     bool
	NumRecords  uint16
	Level       uint16 // 0 for leaf pages
	IndexID     uint64
}

// Page is an INDEX page. Record decoding is left to higher layers.
type Page struct {
	*page.Page
	header Header
}

func init() {
	page.MustRegister(page.PageTypeIndex, New)
}

// New decodes buf as an INDEX page. It is the registered factory.
func New(buf []byte) (page.Decoder, error) {
	p, err := page.New(buf)
	if err != nil {
		return nil, err
	}
	if p.Type() != page.PageTypeIndex {
		return nil, fmt.Errorf("page %d is %s, not INDEX", p.Offset(), p.Type())
	}
	h, err := decodeHeader(p)
	if err != nil {
		return nil, fmt.Errorf("decode index header: %w", err)
	}
	return &Page{Page: p, header: h}, nil
}

func decodeHeader(p *page.Page) (Header, error) {
	var (
		h   Header
		err error
	)
	c := p.Cursor(HeaderStart + offNumDirSlots)
	if h.NumDirSlots, err = c.Uint16(); err != nil {
		return h, err
	}
	heap, err := p.Cursor(HeaderStart + offNumHeap).Uint16()
	if err != nil {
		return h, err
	}
	h.NumHeap = heap &^ compactFlag
	h.Compact = heap&compactFlag != 0
	if h.NumRecords, err = p.Cursor(HeaderStart + offNumRecords).Uint16(); err != nil {
		return h, err
	}
	c = p.Cursor(HeaderStart + offLevel)
	if h.Level, err = c.Uint16(); err != nil {
		return h, err
	}
	if h.IndexID, err = c.Uint64(); err != nil {
		return h, err
	}
	return h, nil
}

func (p *Page) IndexHeader() Header { return p.header }

// IsLeaf reports whether the page is at level 0 of its B-tree.
func (p *Page) IsLeaf() bool { return p.header.Level == 0 }
