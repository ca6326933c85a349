package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestTracedSpan(t *testing.T) {
	parent := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	}))

	tests := []struct {
		name string
		ctx  context.Context
		span string
		want bool
	}{
		{name: "handler in traced request", ctx: parent, span: "httpapi.Handler.GetRankings", want: true},
		{name: "middleware in traced request", ctx: parent, span: "httpapi.RequestLogging", want: false},
		{name: "helper in traced request", ctx: parent, span: "httpapi.writeError", want: false},
		{name: "handler without trace", ctx: context.Background(), span: "httpapi.Handler.Healthz", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tracedSpan(tt.ctx, tt.span); got != tt.want {
				t.Fatalf("tracedSpan(%q)=%v want=%v", tt.span, got, tt.want)
			}
		})
	}
}

func TestStartSpan_UntracedKeepsContext(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.ListWindows")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected untraced context to pass through")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected a no-op span")
	}
}
