package objects

import (
	"context"
	"time"

	"github.com/quiverdb/quiver-go/v1/observability"
)

// observeOperation notifies the observer about an operation if one is
// configured. This is used internally to track codec operations for
// metrics and tracing.
//
// Notes:
//   - resource: the collection name
//   - subResource: the object id, when known
//   - size: the number of top-level properties involved
func (c *Codec) observeOperation(ctx context.Context, operation, resource, subResource string, start time.Time, err error, size int64) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Context:     ctx,
		Component:   "objects",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    time.Since(start),
		Error:       err,
		Size:        size,
		Metadata:    nil,
	})
}
