package oteltrace

import (
	"context"

	"github.com/dokonbot/dokonbot/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New returns a Tracer backed by the globally configured otel provider.
// Without a configured SDK provider this degrades to no-op spans.
func New(name string) observability.Tracer {
	if name == "" {
		name = "dokonbot"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
