package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/config"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	previous := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return sr
}

func TestTraceRecordsSuccess(t *testing.T) {
	sr := recordSpans(t)

	err := Trace(context.Background(), "encode", func(ctx context.Context) error { return nil },
		attribute.String("rerun.path", "clip.mp4"))
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "encode", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("rerun.path", "clip.mp4"))
}

func TestTraceRecordsErrorCode(t *testing.T) {
	sr := recordSpans(t)

	want := errors.New(errors.ErrorTypeDecode, "bad magic")
	err := Trace(context.Background(), "inspect", func(ctx context.Context) error { return want })
	assert.Same(t, want, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("rerun.error_code", "decode"))
	require.Len(t, spans[0].Events(), 1, "the error is recorded as an event")
}

func TestInitTracingDisabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(config.TracingConfig{}, "test", &buf)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.Zero(t, buf.Len())
}

func TestInitTracingExportsToWriter(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	var buf bytes.Buffer
	shutdown, err := InitTracing(config.TracingConfig{Enabled: true, ServiceName: "rrcodec-test"}, "test", &buf)
	require.NoError(t, err)

	require.NoError(t, Trace(context.Background(), "encode", func(ctx context.Context) error { return nil }))
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"encode"`)
	assert.Contains(t, buf.String(), "rrcodec-test")
}
