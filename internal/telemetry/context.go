package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

const (
	telemeterContextKey ctxKey = iota
)

// TraceParentEnv is the environment variable used to hand the current trace
// context to child processes.
const TraceParentEnv = "TRACEPARENT"

type ctxKey byte

func ContextWithTelemeter(ctx context.Context, tlm *Telemeter) context.Context {
	return context.WithValue(ctx, telemeterContextKey, tlm)
}

func TelemeterFromContext(ctx context.Context) *Telemeter {
	if val := ctx.Value(telemeterContextKey); val != nil {
		if val, ok := val.(*Telemeter); ok {
			return val
		}
	}

	return new(Telemeter)
}

// TraceParentFromContext returns the W3C traceparent value for the current
// span, so it can be handed to child processes via the TRACEPARENT
// environment variable.
func TraceParentFromContext(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	spanContext := span.SpanContext()

	if !spanContext.IsValid() {
		return ""
	}

	traceID := spanContext.TraceID().String()
	spanID := spanContext.SpanID().String()
	flags := "00"

	if spanContext.TraceFlags().IsSampled() {
		flags = "01"
	}

	return "00-" + traceID + "-" + spanID + "-" + flags
}
