package observability

import (
	"context"
	"time"
)

// OperationContext carries the details of a single completed client
// operation. Components fill in the fields that make sense for them and
// leave the rest at their zero values.
//
// Notes:
//   - Resource: the primary thing operated on (collection name, type name)
//   - SubResource: additional context (property name, object id)
//   - Size: an operation-defined magnitude such as properties converted
//     or bytes encoded
type OperationContext struct {
	// Context is the request context the operation ran under, when the
	// operation had one. Observers that correlate with traces read the
	// active span from it. May be nil for context-free operations.
	Context context.Context

	// Component identifies the reporting package, e.g. "properties" or
	// "objects".
	Component string

	// Operation names the action, e.g. "marshal" or "decode_rest".
	Operation string

	Resource    string
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is the error the operation returned, or nil on success.
	Error error

	// Size is an operation-defined magnitude; zero when not applicable.
	Size int64

	// Metadata holds extra key-value details, e.g. the wire encoding.
	Metadata map[string]interface{}
}

// Observer receives operation reports from client components. Typical
// implementations feed metrics systems or tracing backends.
//
// ObserveOperation is called synchronously after each operation, so
// implementations must be fast and must never panic. Implementations
// must be safe for concurrent use.
//
//go:generate mockgen -source=interface.go -destination=mock_observer.go -package=observability
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// Status returns "success" or "error" depending on whether the
// operation failed. Metric-emitting observers use it as a label value.
func (c OperationContext) Status() string {
	if c.Error != nil {
		return "error"
	}
	return "success"
}
