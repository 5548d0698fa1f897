// Package observability defines the operation reporting contract shared
// by every component in the Quiver client library.
//
// Components such as the property mapper and the object codec do not
// talk to Prometheus or OpenTelemetry directly. Instead they report each
// completed operation to an optional Observer, and this package supplies
// ready-made observers that turn those reports into metrics or trace
// annotations. Applications that want neither simply attach no observer
// and pay nothing.
//
// # Core Types
//
//   - OperationContext: the report for a single operation (component,
//     operation, resource, duration, error, size, metadata)
//   - Observer: the single-method interface components report to
//   - PrometheusObserver: counts operations and records durations
//   - TracingObserver: adds span events to the caller's active span
//   - MultiObserver: fans one report out to several observers
//
// # Basic Usage
//
//	import (
//		"github.com/quiverdb/quiver-go/v1/metrics"
//		"github.com/quiverdb/quiver-go/v1/observability"
//		"github.com/quiverdb/quiver-go/v1/properties"
//	)
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	obs := observability.NewMultiObserver(
//		observability.NewPrometheusObserver(m),
//		observability.NewTracingObserver(),
//	)
//
//	reg := properties.NewRegistry()
//	mapper := properties.NewMapper(reg, properties.WithObserver(obs))
//
// Every Marshal and Unmarshal on the mapper now increments
// quiver_operations_total and records quiver_operation_duration_seconds,
// labelled with the component, operation and outcome.
//
// # Custom Observers
//
// An Observer is one method, so adapting an in-house metrics system is a
// few lines:
//
//	type logObserver struct{ log *logger.Logger }
//
//	func (o *logObserver) ObserveOperation(ctx observability.OperationContext) {
//		if ctx.Error != nil {
//			o.log.Warn("operation failed", ctx.Error, map[string]interface{}{
//				"component": ctx.Component,
//				"operation": ctx.Operation,
//			})
//		}
//	}
//
// Observers are invoked synchronously on the calling goroutine.
// Implementations must be fast, must never panic, and must be safe for
// concurrent use.
//
// # Testing
//
// MockObserver is a GoMock mock of the Observer interface, regenerated
// with go:generate. Hand-rolled recording observers work just as well
// for simple assertions.
//
// # Related Packages
//
//   - github.com/quiverdb/quiver-go/v1/metrics: the Prometheus registry
//     and factories PrometheusObserver records into
//   - github.com/quiverdb/quiver-go/v1/properties: reports conversion
//     operations through this contract
//   - github.com/quiverdb/quiver-go/v1/objects: reports encode and
//     decode operations through this contract
package observability
