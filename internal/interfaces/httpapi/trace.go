package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var handlerTracer = otel.Tracer("club-standings/internal/interfaces/httpapi")

// startSpan opens a handler span below the request span from RequestTracing.
// Untraced requests (health checks, tests) get the no-op span from ctx.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return handlerTracer.Start(ctx, name)
}
