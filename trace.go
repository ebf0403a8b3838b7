//go:build !notrace

package svgo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

type traceLoggerKey struct{}
type spanKey struct{}

// the null logger is a logger that does nothing
var nullLogger = slog.New(slog.DiscardHandler)

// TracingEnabled is true unless the package is built with -tags notrace
var TracingEnabled = true

var tracingActive atomic.Bool

func init() {
	tracingActive.Store(true)
}

// Span is returned by StartSpan. End logs the duration of the span.
type Span interface {
	End()
}

// SpanInfo holds information about a tracing span
type SpanInfo struct {
	ID       string
	ParentID string
	Name     string
	Start    time.Time
}

type span struct {
	ctx  context.Context
	info *SpanInfo
}

func (s *span) End() {
	tlog := traceLogger(s.ctx)
	tlog.Debug("END",
		slog.String("span_id", s.info.ID),
		slog.String("span_name", s.info.Name),
		slog.Duration("duration", time.Since(s.info.Start)),
	)
}

// WithTraceLogger attaches tlog to ctx. Parse and Optimize log their
// progress to it at debug level.
func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	// If the context already has a trace logger, return the context as is
	if _, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return ctx
	}

	// Otherwise, create a new context with the trace logger
	return context.WithValue(ctx, traceLoggerKey{}, tlog)
}

// SetTracingEnabled turns trace output on or off at runtime
func SetTracingEnabled(enabled bool) {
	tracingActive.Store(enabled)
}

// WithSpan records a new span in the context. The span's parent is
// the span already present in ctx, if any.
func WithSpan(ctx context.Context, name string) (context.Context, *SpanInfo) {
	info := &SpanInfo{
		ID:    generateSpanID(),
		Name:  name,
		Start: time.Now(),
	}
	if parent, ok := ctx.Value(spanKey{}).(*SpanInfo); ok {
		info.ParentID = parent.ID
	}
	return context.WithValue(ctx, spanKey{}, info), info
}

// StartSpan is WithSpan plus a START record. Call End on the returned
// span to log the matching END record.
func StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, info := WithSpan(ctx, name)
	traceLogger(ctx).Debug("START",
		slog.String("span_id", info.ID),
		slog.String("span_name", info.Name),
	)
	return ctx, &span{ctx: ctx, info: info}
}

// TraceEvent logs msg at debug level, tagged with the current span.
func TraceEvent(ctx context.Context, msg string, attrs ...slog.Attr) {
	traceLogger(ctx).LogAttrs(ctx, slog.LevelDebug, msg, withSpanAttrs(ctx, attrs)...)
}

// TraceError logs err at error level, tagged with the current span.
func TraceError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	traceLogger(ctx).LogAttrs(ctx, slog.LevelError, msg, withSpanAttrs(ctx, attrs)...)
}

func withSpanAttrs(ctx context.Context, attrs []slog.Attr) []slog.Attr {
	if info, ok := ctx.Value(spanKey{}).(*SpanInfo); ok {
		attrs = append(attrs, slog.String("span_id", info.ID))
	}
	return attrs
}

func traceLogger(ctx context.Context) *slog.Logger {
	if !tracingActive.Load() {
		return nullLogger
	}
	if tlog, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return tlog
	}
	return nullLogger
}

func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	tlog := traceLogger(ctx)
	if tlog == nullLogger {
		return tlog
	}

	// Retrieve the function name of the caller for tracing
	pc, _, _, ok := runtime.Caller(1)
	if ok {
		fn := runtime.FuncForPC(pc)
		if fn != nil {
			tlog = tlog.With(slog.String("fn", fn.Name()))
		}
	}
	return tlog
}

func generateSpanID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
