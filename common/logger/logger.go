// Package logger configures slog and carries per-context log fields and spans.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"

	"lexdesk.app/deedwatch/core/config"
)

func Setup(cfg config.Config) {
	SetupTo(cfg, os.Stdout)
}

// SetupTo is Setup with the local handlers writing to w instead of stdout.
// Production with an OTLP endpoint ships records through the otelslog bridge,
// which reads trace ids from the context itself.
func SetupTo(cfg config.Config, w io.Writer) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	switch {
	case cfg.IsProduction() && cfg.OTel.Enabled():
		handler = &ContextHandler{Handler: otelslog.NewHandler(
			cfg.OTel.ServiceName,
			otelslog.WithLoggerProvider(global.GetLoggerProvider()),
		)}
	case cfg.IsProduction():
		handler = &ContextHandler{Handler: slog.NewJSONHandler(w, opts), TraceIDs: true}
	default:
		handler = &ContextHandler{Handler: slog.NewTextHandler(w, opts), TraceIDs: true}
	}

	slog.SetDefault(slog.New(handler))
}

// ContextHandler adds the context's LogFields, and optionally its trace and span
// ids, to every record.
type ContextHandler struct {
	slog.Handler
	TraceIDs bool
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.TraceIDs {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			r.AddAttrs(
				slog.String("trace_id", sc.TraceID().String()),
				slog.String("span_id", sc.SpanID().String()),
			)
		}
	}
	r.AddAttrs(fieldsFrom(ctx).attrs()...)
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs), TraceIDs: h.TraceIDs}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name), TraceIDs: h.TraceIDs}
}
