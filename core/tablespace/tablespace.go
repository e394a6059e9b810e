// Package tablespace supplies decoded pages from a tablespace file. It reads
// whole 16 KiB pages, runs them through a page registry and keeps recently
// decoded pages in a ristretto cache.
package tablespace

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sushant-115/innopage/core/page"
	internaltelemetry "github.com/sushant-115/innopage/internal/telemetry"
	"github.com/sushant-115/innopage/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const DefaultCachePages = 1024

// Tablespace reads pages from an io.ReaderAt holding consecutive pages.
type Tablespace struct {
	r         io.ReaderAt
	closer    io.Closer
	size      int64
	pageCount uint64

	registry   *page.Registry
	logger     *zap.Logger
	metrics    *internaltelemetry.PageMetrics
	tracer     trace.Tracer
	cachePages int
	cache      *ristretto.Cache[uint32, page.Decoder]
	closed     atomic.Bool
}

// Option configures a Tablespace.
type Option func(*Tablespace)

func WithLogger(l *zap.Logger) Option { return func(ts *Tablespace) { ts.logger = l } }

func WithMetrics(m *internaltelemetry.PageMetrics) Option {
	return func(ts *Tablespace) { ts.metrics = m }
}

func WithTracer(t trace.Tracer) Option { return func(ts *Tablespace) { ts.tracer = t } }

// WithRegistry selects the registry used to dispatch pages. Defaults to
// page.DefaultRegistry().
func WithRegistry(r *page.Registry) Option { return func(ts *Tablespace) { ts.registry = r } }

// WithCacheSize sets how many decoded pages are cached. 0 disables the cache.
func WithCacheSize(pages int) Option { return func(ts *Tablespace) { ts.cachePages = pages } }

// Open opens the tablespace file at path. Close releases the file.
func Open(path string, opts ...Option) (*Tablespace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tablespace %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat tablespace %s: %w", path, err)
	}
	ts, err := New(f, info.Size(), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	ts.closer = f
	return ts, nil
}

// New wraps r, which holds size bytes of consecutive pages.
func New(r io.ReaderAt, size int64, opts ...Option) (*Tablespace, error) {
	if size%page.PageSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPartialPage, size)
	}
	if size/page.PageSize > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: %d pages", ErrTooManyPages, size/page.PageSize)
	}
	ts := &Tablespace{
		r:          r,
		size:       size,
		pageCount:  uint64(size / page.PageSize),
		registry:   page.DefaultRegistry(),
		tracer:     nooptrace.NewTracerProvider().Tracer(""),
		cachePages: DefaultCachePages,
	}
	for _, opt := range opts {
		opt(ts)
	}
	ts.logger = logger.OrNop(ts.logger)
	if ts.metrics == nil {
		ts.metrics = internaltelemetry.NewNoopPageMetrics()
	}

	if ts.cachePages > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[uint32, page.Decoder]{
			NumCounters:        int64(ts.cachePages) * 10,
			MaxCost:            int64(ts.cachePages), // cost is counted in pages
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, fmt.Errorf("create page cache: %w", err)
		}
		ts.cache = cache
	}

	ts.logger.Debug("tablespace opened",
		zap.Int64("size", size),
		zap.Uint64("pages", ts.pageCount),
		zap.Int("cachePages", ts.cachePages),
	)
	return ts, nil
}

// PageCount returns the number of whole pages in the tablespace.
func (ts *Tablespace) PageCount() uint64 { return ts.pageCount }

// ReadPage reads page n and returns its decoder: a registered specialization
// for the page's type, or the generic *page.Page. Decoders are cached and
// shared between callers, and Data returns slices aliasing the page buffer,
// so results must be treated as read-only.
func (ts *Tablespace) ReadPage(ctx context.Context, n uint32) (page.Decoder, error) {
	if ts.closed.Load() {
		return nil, ErrClosed
	}
	ctx, span := ts.tracer.Start(ctx, "tablespace.ReadPage", trace.WithAttributes(attribute.Int64("page_no", int64(n))))
	defer span.End()

	if uint64(n) >= ts.pageCount {
		err := fmt.Errorf("%w: page %d, tablespace has %d pages", ErrPageNotFound, n, ts.pageCount)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if ts.cache != nil {
		if d, ok := ts.cache.Get(n); ok {
			ts.metrics.RecordCacheHit(ctx)
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return d, nil
		}
	}

	start := time.Now()
	buf := make([]byte, page.PageSize)
	if _, err := ts.r.ReadAt(buf, int64(n)*page.PageSize); err != nil {
		ts.metrics.RecordError(ctx, "io")
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return nil, fmt.Errorf("read page %d: %w", n, err)
	}

	d, err := ts.registry.Parse(buf)
	if err != nil {
		ts.metrics.RecordError(ctx, "decode")
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		ts.logger.Warn("failed to decode page", zap.Uint32("pageNo", n), zap.Error(err))
		return nil, fmt.Errorf("parse page %d: %w", n, err)
	}

	_, generic := d.(*page.Page)
	ts.metrics.RecordParsed(ctx, d.Type().String(), !generic, time.Since(start))
	span.SetAttributes(attribute.String("page_type", d.Type().String()))

	if !d.Type().Known() {
		ts.logger.Debug("page has unmapped type code", zap.Uint32("pageNo", n), zap.Uint16("typeCode", uint16(d.Type())))
	}
	if d.Offset() != n {
		ts.logger.Debug("page number in header differs from file position",
			zap.Uint32("pageNo", n), zap.Uint32("headerOffset", d.Offset()))
	}

	if ts.cache != nil {
		ts.cache.Set(n, d, 1)
	}
	return d, nil
}

// Each calls fn for every page in order. It stops at the first error from
// ReadPage or fn, or when ctx is cancelled.
func (ts *Tablespace) Each(ctx context.Context, fn func(page.Decoder) error) error {
	for n := uint64(0); n < ts.pageCount; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, err := ts.ReadPage(ctx, uint32(n))
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the cache and, for tablespaces created by Open, the file.
func (ts *Tablespace) Close() error {
	if !ts.closed.CompareAndSwap(false, true) {
		return nil
	}
	if ts.cache != nil {
		ts.cache.Close()
	}
	if ts.closer != nil {
		return ts.closer.Close()
	}
	return nil
}
