package observability

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// TracingObserver annotates the caller's active span with one event per
// operation. The event is named "quiver.<component>.<operation>" and
// carries the operation's duration, resource, size and metadata as
// attributes.
//
// The observer never starts spans of its own. It reads the span from
// OperationContext.Context; operations reported without a context, or
// under a context with no recording span, are ignored. This keeps the
// library free of tracer configuration: applications own their tracer
// provider and the observer only decorates what is already there.
type TracingObserver struct{}

// NewTracingObserver returns a TracingObserver. The zero value is also
// ready to use.
func NewTracingObserver() *TracingObserver {
	return &TracingObserver{}
}

// ObserveOperation adds a span event for the operation if the reported
// context carries a recording span.
func (t *TracingObserver) ObserveOperation(ctx OperationContext) {
	if ctx.Context == nil {
		return
	}
	span := traceSpan.SpanFromContext(ctx.Context)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("quiver.component", ctx.Component),
		attribute.String("quiver.operation", ctx.Operation),
		attribute.Float64("quiver.duration_ms", float64(ctx.Duration)/float64(time.Millisecond)),
	}
	if ctx.Resource != "" {
		attrs = append(attrs, attribute.String("quiver.resource", ctx.Resource))
	}
	if ctx.SubResource != "" {
		attrs = append(attrs, attribute.String("quiver.sub_resource", ctx.SubResource))
	}
	if ctx.Size > 0 {
		attrs = append(attrs, attribute.Int64("quiver.size", ctx.Size))
	}
	attrs = append(attrs, metadataAttributes(ctx.Metadata)...)

	span.AddEvent("quiver."+ctx.Component+"."+ctx.Operation, traceSpan.WithAttributes(attrs...))

	// The span belongs to the caller; record the error on it but leave
	// the status decision to whoever owns the span.
	if ctx.Error != nil {
		span.RecordError(ctx.Error)
	}
}

// metadataAttributes converts an operation's metadata map into span
// attributes, prefixing keys with "quiver.". Values of unsupported
// types are stringified.
func metadataAttributes(metadata map[string]interface{}) []attribute.KeyValue {
	if len(metadata) == 0 {
		return nil
	}

	attributes := make([]attribute.KeyValue, 0, len(metadata))
	for k, v := range metadata {
		key := "quiver." + k
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(key, val))
		case int:
			attributes = append(attributes, attribute.Int(key, val))
		case int64:
			attributes = append(attributes, attribute.Int64(key, val))
		case float64:
			attributes = append(attributes, attribute.Float64(key, val))
		case bool:
			attributes = append(attributes, attribute.Bool(key, val))
		default:
			attributes = append(attributes, attribute.String(key, fmt.Sprint(val)))
		}
	}
	return attributes
}
