package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Tracer opens spans for application operations. The OpenTelemetry
// implementation lives in infrastructure/monitoring.
type Tracer interface {
	StartSpan(ctx context.Context, spanName string, attrs map[string]interface{}, opts ...trace.SpanStartOption) (context.Context, trace.Span)

	// RecordError marks the span carried by ctx as failed.
	RecordError(ctx context.Context, err error)
}
