package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quiverdb/quiver-go/v1/metrics"
)

// PrometheusObserver translates operation reports into Prometheus
// metrics. It registers two metrics on construction:
//
//	quiver_operations_total{component, operation, status}
//	quiver_operation_duration_seconds{component, operation}
//
// The observer is stateless after construction and safe for concurrent
// use.
type PrometheusObserver struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheusObserver registers the observer's metrics with the
// collector's registry and returns the observer.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	obs := observability.NewPrometheusObserver(m)
//	mapper := properties.NewMapper(reg, properties.WithObserver(obs))
func NewPrometheusObserver(collector metrics.MetricsCollector) *PrometheusObserver {
	return &PrometheusObserver{
		operations: collector.CreateCounter(
			"quiver_operations_total",
			"Total number of client operations by component, operation and status",
			[]string{"component", "operation", "status"},
		),
		durations: collector.CreateHistogram(
			"quiver_operation_duration_seconds",
			"Duration of client operations in seconds",
			[]string{"component", "operation"},
			prometheus.DefBuckets,
		),
	}
}

// ObserveOperation records the operation in both metrics.
func (p *PrometheusObserver) ObserveOperation(ctx OperationContext) {
	p.operations.WithLabelValues(ctx.Component, ctx.Operation, ctx.Status()).Inc()
	p.durations.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
}
