//go:build notrace

package svgo

import (
	"context"
	"log/slog"
	"time"
)

// No-op implementations when built with -tags notrace

// Span is returned by StartSpan - no-op version
type Span interface {
	End()
}

type noOpSpan struct{}

func (s *noOpSpan) End() {}

// SpanInfo holds information about a tracing span
type SpanInfo struct {
	ID       string
	ParentID string
	Name     string
	Start    time.Time
}

var nullLogger = slog.New(slog.DiscardHandler)

var TracingEnabled = false

// WithTraceLogger - no-op version
func WithTraceLogger(ctx context.Context, _ *slog.Logger) context.Context {
	return ctx
}

// SetTracingEnabled - no-op version
func SetTracingEnabled(bool) {}

// WithSpan - no-op version
func WithSpan(ctx context.Context, _ string) (context.Context, *SpanInfo) {
	return ctx, nil
}

// StartSpan - no-op version
func StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, &noOpSpan{}
}

// TraceEvent - no-op version
func TraceEvent(context.Context, string, ...slog.Attr) {}

// TraceError - no-op version
func TraceError(context.Context, error, string, ...slog.Attr) {}

func traceLogger(context.Context) *slog.Logger {
	return nullLogger
}

func getTraceLogFromContext(context.Context) *slog.Logger {
	return nullLogger
}

func generateSpanID() string {
	return ""
}
