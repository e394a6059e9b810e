package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	tel, shutdown, err := New(Config{Enabled: false})
	require.NoError(t, err)
	require.Nil(t, tel.MeterProvider)
	require.NotNil(t, tel.Meter)
	require.NotNil(t, tel.Tracer)
	require.NoError(t, shutdown(context.Background()))
}

func TestNew_EnabledWithoutHTTPEndpoint(t *testing.T) {
	tel, shutdown, err := New(Config{Enabled: true, TraceSampleRatio: 5})
	require.NoError(t, err)
	require.NotNil(t, tel.MeterProvider)
	require.NotNil(t, tel.TracerProvider)

	_, span := tel.Tracer.Start(context.Background(), "test")
	span.End()
	require.NoError(t, shutdown(context.Background()))
}

func TestNew_StdoutTraceExporter(t *testing.T) {
	tel, shutdown, err := New(Config{Enabled: true, TraceExporter: "stdout"})
	require.NoError(t, err)

	_, span := tel.Tracer.Start(context.Background(), "tablespace.ReadPage")
	require.True(t, span.SpanContext().IsSampled())
	span.End()
	require.NoError(t, shutdown(context.Background()))
}

func TestNew_UnknownTraceExporter(t *testing.T) {
	_, _, err := New(Config{Enabled: true, TraceExporter: "jaeger"})
	require.Error(t, err)
}
