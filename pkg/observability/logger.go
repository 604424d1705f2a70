package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrCase    = "case"
	attrService = "service"
	attrVersion = "version"
	attrEnv     = "env"
	attrMode    = "mode"
)

// LogIdentity names the running binary on every log record.
// Empty Version and Environment are omitted.
type LogIdentity struct {
	Service     string
	Version     string
	Environment string
	Mode        AppMode
}

func (id LogIdentity) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String(attrService, id.Service),
		slog.String(attrMode, string(id.Mode)),
	}

	if id.Version != "" {
		attrs = append(attrs, slog.String(attrVersion, id.Version))
	}

	if id.Environment != "" {
		attrs = append(attrs, slog.String(attrEnv, id.Environment))
	}

	return attrs
}

type caseKey struct{}

// ContextWithCase returns ctx carrying the name of the case being replayed.
// Records logged through a TracingHandler with that context get a "case"
// attribute.
func ContextWithCase(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, caseKey{}, name)
}

// CaseFromContext returns the case name stored by ContextWithCase.
func CaseFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(caseKey{}).(string)

	return name, ok
}

// TracingHandler is an [slog.Handler] that tags each record with the active
// span's trace_id and span_id and the replayed case name from the context.
// Identity attributes sit on the inner handler, outside any later group.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps inner and pre-attaches id.
func NewTracingHandler(inner slog.Handler, id LogIdentity) *TracingHandler {
	return &TracingHandler{inner: inner.WithAttrs(id.attrs())}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

// Handle adds context attributes, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if name, ok := CaseFromContext(ctx); ok {
		record.AddAttrs(slog.String(attrCase, name))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := th.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a TracingHandler whose inner handler carries attrs.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{inner: th.inner.WithAttrs(attrs)}
}

// WithGroup returns a TracingHandler whose inner handler opens group name.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{inner: th.inner.WithGroup(name)}
}
