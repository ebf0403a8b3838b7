package svgo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTraceBuffer() (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf, logger
}

func TestWithTraceLogger(t *testing.T) {
	buf, logger := newTraceBuffer()

	ctx := WithTraceLogger(context.Background(), logger)
	tlog := getTraceLogFromContext(ctx)
	require.NotNil(t, tlog)

	tlog.Debug("hello")
	if !TracingEnabled {
		require.Empty(t, buf.String())
		return
	}
	require.Contains(t, buf.String(), "hello")
	require.Contains(t, buf.String(), "TestWithTraceLogger", "caller name should be attached")

	// a second logger does not override the first
	other, otherLogger := newTraceBuffer()
	ctx = WithTraceLogger(ctx, otherLogger)
	getTraceLogFromContext(ctx).Debug("again")
	require.Empty(t, other.String())
}

func TestWithSpan(t *testing.T) {
	if !TracingEnabled {
		t.Skip("Tracing disabled - skipping span test")
		return
	}

	ctx, span := WithSpan(context.Background(), "test_operation")
	require.NotEmpty(t, span.ID)
	require.Equal(t, "test_operation", span.Name)
	require.Empty(t, span.ParentID)

	_, span2 := WithSpan(ctx, "nested_operation")
	require.Equal(t, span.ID, span2.ParentID)
	require.NotEqual(t, span.ID, span2.ID)
}

func TestStartSpan(t *testing.T) {
	if !TracingEnabled {
		t.Skip("Tracing disabled - skipping StartSpan test")
		return
	}

	buf, logger := newTraceBuffer()
	ctx := WithTraceLogger(context.Background(), logger)
	_, span := StartSpan(ctx, "test_function")
	time.Sleep(time.Millisecond)
	span.End()

	output := buf.String()
	require.Contains(t, output, "START")
	require.Contains(t, output, "END")
	require.Contains(t, output, "span_id")
	require.Contains(t, output, "test_function")
	require.Contains(t, output, "duration")
}

func TestTraceEventAndError(t *testing.T) {
	buf, logger := newTraceBuffer()
	ctx := WithTraceLogger(context.Background(), logger)
	ctx, _ = WithSpan(ctx, "event_span")

	TraceEvent(ctx, "processing data", slog.String("data_type", "svg"))
	TraceError(ctx, errors.New("test error"), "error occurred", slog.String("component", "parser"))

	output := buf.String()
	if !TracingEnabled {
		require.Empty(t, output)
		return
	}
	require.Contains(t, output, "processing data")
	require.Contains(t, output, "svg")
	require.Contains(t, output, "test error")
	require.Contains(t, output, "ERROR")
	require.Contains(t, output, "span_id")
}

func TestSetTracingEnabled(t *testing.T) {
	if !TracingEnabled {
		t.Skip("Tracing disabled")
		return
	}

	buf, logger := newTraceBuffer()
	ctx := WithTraceLogger(context.Background(), logger)

	SetTracingEnabled(false)
	t.Cleanup(func() { SetTracingEnabled(true) })
	TraceEvent(ctx, "muted")
	require.Empty(t, buf.String())

	SetTracingEnabled(true)
	TraceEvent(ctx, "audible")
	require.Contains(t, buf.String(), "audible")
}

func TestNullLogger(t *testing.T) {
	ctx := context.Background()

	tlog := getTraceLogFromContext(ctx)
	require.NotNil(t, tlog)
	require.NotPanics(t, func() {
		tlog.Debug("this should not output anything")
		TraceEvent(ctx, "test event")
		TraceError(ctx, errors.New("test"), "test error")
	})
}

func TestSpanIDGeneration(t *testing.T) {
	if !TracingEnabled {
		t.Skip("Tracing disabled - skipping span ID generation test")
		return
	}

	ids := make(map[string]bool)
	for range 100 {
		id := generateSpanID()
		require.Len(t, id, 16) // 8 bytes = 16 hex chars
		require.False(t, ids[id], "Span ID collision detected: %s", id)
		ids[id] = true
	}
}
