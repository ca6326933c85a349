package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Only handler entry points get their own span; helpers and middleware ride
// on the otelhttp server span.
const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("scouting-panel/internal/interfaces/httpapi")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !tracedSpan(ctx, name) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name)
}

func tracedSpan(ctx context.Context, name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && trace.SpanContextFromContext(ctx).IsValid()
}
