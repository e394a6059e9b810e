package internaltelemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// PageMetrics holds all the metric instruments for page decoding.
type PageMetrics struct {
	PagesParsedCounter      metric.Int64Counter
	PagesSpecializedCounter metric.Int64Counter
	PageErrorsCounter       metric.Int64Counter
	CacheHitsCounter        metric.Int64Counter
	ReadLatencyHistogram    metric.Float64Histogram
}

// NewPageMetrics creates and registers all the metrics for page decoding.
func NewPageMetrics(meter metric.Meter) (*PageMetrics, error) {
	pagesParsedCounter, err := meter.Int64Counter(
		"innopage.pages.parsed_total",
		metric.WithDescription("Total number of pages decoded, by page type."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	pagesSpecializedCounter, err := meter.Int64Counter(
		"innopage.pages.specialized_total",
		metric.WithDescription("Pages handed to a registered type-specific decoder."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	pageErrorsCounter, err := meter.Int64Counter(
		"innopage.pages.errors_total",
		metric.WithDescription("Pages that failed to read or decode."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	cacheHitsCounter, err := meter.Int64Counter(
		"innopage.tablespace.cache_hits_total",
		metric.WithDescription("Page reads served from the decoded page cache."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	readLatencyHistogram, err := meter.Float64Histogram(
		"innopage.tablespace.read_duration",
		metric.WithDescription("Latency of reading and decoding one page."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &PageMetrics{
		PagesParsedCounter:      pagesParsedCounter,
		PagesSpecializedCounter: pagesSpecializedCounter,
		PageErrorsCounter:       pageErrorsCounter,
		CacheHitsCounter:        cacheHitsCounter,
		ReadLatencyHistogram:    readLatencyHistogram,
	}, nil
}

// NewNoopPageMetrics returns instruments that record nothing.
func NewNoopPageMetrics() *PageMetrics {
	m, _ := NewPageMetrics(noop.NewMeterProvider().Meter(""))
	return m
}

// RecordParsed counts one decoded page of type pageType.
func (m *PageMetrics) RecordParsed(ctx context.Context, pageType string, specialized bool, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("page_type", pageType))
	m.PagesParsedCounter.Add(ctx, 1, attrs)
	if specialized {
		m.PagesSpecializedCounter.Add(ctx, 1, attrs)
	}
	m.ReadLatencyHistogram.Record(ctx, float64(elapsed.Microseconds())/1000.0)
}

func (m *PageMetrics) RecordError(ctx context.Context, reason string) {
	m.PageErrorsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *PageMetrics) RecordCacheHit(ctx context.Context) {
	m.CacheHitsCounter.Add(ctx, 1)
}
