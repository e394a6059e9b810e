package page

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeIndexPage stands in for a specialized decoder.
type fakeIndexPage struct {
	*Page
	level uint16
}

func fakeIndexFactory(buf []byte) (Decoder, error) {
	p, err := New(buf)
	if err != nil {
		return nil, err
	}
	level, err := p.Cursor(FilHeaderEnd + 26).Uint16()
	if err != nil {
		return nil, err
	}
	return &fakeIndexPage{Page: p, level: level}, nil
}

func TestRegistry_ParseDispatchesToSpecialization(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(PageTypeIndex, fakeIndexFactory))

	buf := newTestBuffer(testHeader{offset: 3, pageType: uint16(PageTypeIndex)})
	buf[FilHeaderEnd+27] = 2

	d, err := r.Parse(buf)
	require.NoError(t, err)
	idx, ok := d.(*fakeIndexPage)
	require.True(t, ok, "expected specialized page, got %T", d)
	require.Equal(t, uint16(2), idx.level)
	require.Equal(t, PageTypeIndex, idx.Type())
	require.Equal(t, uint32(3), idx.Offset())
}

func TestRegistry_ParseWithoutRegistrationReturnsGenericPage(t *testing.T) {
	r := NewRegistry()
	buf := newTestBuffer(testHeader{pageType: uint16(PageTypeIndex)})

	d, err := r.Parse(buf)
	require.NoError(t, err)
	_, ok := d.(*Page)
	require.True(t, ok, "expected generic page, got %T", d)
	require.Equal(t, PageTypeIndex, d.Type())
}

func TestRegistry_ParseUnknownTypeCode(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(PageTypeIndex, fakeIndexFactory))

	d, err := r.Parse(newTestBuffer(testHeader{pageType: 9999}))
	require.NoError(t, err)
	_, ok := d.(*Page)
	require.True(t, ok)
	require.Equal(t, PageType(9999), d.Type())
	require.False(t, d.Type().Known())
}

func TestRegistry_ParseSizeMismatch(t *testing.T) {
	r := NewRegistry()
	d, err := r.Parse(make([]byte, 4096))
	require.Nil(t, d)
	require.ErrorIs(t, err, ErrPageSizeMismatch)
}

func TestRegistry_FactoryErrorIsWrapped(t *testing.T) {
	errBadBody := errors.New("bad body")
	r := NewRegistry()
	require.NoError(t, r.Register(PageTypeUndoLog, func([]byte) (Decoder, error) { return nil, errBadBody }))

	_, err := r.Parse(newTestBuffer(testHeader{offset: 12, pageType: uint16(PageTypeUndoLog)}))
	require.ErrorIs(t, err, errBadBody)
	require.Contains(t, err.Error(), "UNDO_LOG page 12")
}

func TestRegistry_RegisterRules(t *testing.T) {
	r := NewRegistry()

	require.ErrorIs(t, r.Register(PageTypeBlob, nil), ErrNilFactory)

	require.NoError(t, r.Register(PageTypeBlob, fakeIndexFactory))
	require.ErrorIs(t, r.Register(PageTypeBlob, fakeIndexFactory), ErrDuplicateRegistration)
	require.Panics(t, func() { r.MustRegister(PageTypeBlob, fakeIndexFactory) })

	_, ok := r.Lookup(PageTypeZBlob)
	require.False(t, ok)
	f, ok := r.Lookup(PageTypeBlob)
	require.True(t, ok)
	require.NotNil(t, f)

	r.MustRegister(PageTypeAllocated, fakeIndexFactory)
	require.Equal(t, []PageType{PageTypeAllocated, PageTypeBlob}, r.Types())
}

func TestRegistry_ConcurrentParse(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(PageTypeIndex, fakeIndexFactory)
	buf := newTestBuffer(testHeader{pageType: uint16(PageTypeIndex)})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d, err := r.Parse(buf)
				if err != nil || d.Type() != PageTypeIndex {
					t.Errorf("parse failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
