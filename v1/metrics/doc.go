// Package metrics provides Prometheus-based monitoring and metrics
// collection for the Quiver client library.
//
// The metrics package exposes a configurable /metrics endpoint for
// Prometheus scraping, ships built-in metrics for property conversion
// activity, supports dynamic registration of custom metrics, and
// integrates with the Fx dependency injection framework for lifecycle
// management.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design
// pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//
// Core Features:
//   - Exposes a configurable /metrics endpoint for Prometheus scraping
//   - Built-in counters, histograms and gauges for conversion activity
//   - Support for custom metric registration (counters, gauges, histograms)
//   - Automatic registration of Go runtime and process-level metrics
//   - A constant "service" label on every metric for multi-service setups
//   - Graceful startup and shutdown via Fx lifecycle hooks
//
// # Built-in Metrics
//
//   - quiver_conversions_total{direction, encoding, status}: property
//     conversions, direction "to_wire" or "from_wire"
//   - quiver_conversion_duration_seconds{direction}: conversion latency
//   - quiver_graph_properties{collection}: property count of the most
//     recently converted graph
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import "github.com/quiverdb/quiver-go/v1/metrics"
//
//	cfg := metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "catalog-indexer",
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	// Use built-in metrics
//	m.IncrementConversions("to_wire", "rest", "success")
//	defer m.RecordConversionDuration(time.Now(), "to_wire")
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.DefaultConfig()
//		}),
//	)
//	app.Run()
//
// # Configuration
//
// The metrics server can be configured via environment variables:
//
//	QUIVER_METRICS_ADDRESS=:9090                     # Port and address for /metrics
//	QUIVER_METRICS_ENABLE_DEFAULT_COLLECTORS=true    # Enable runtime and process metrics
//	QUIVER_METRICS_SERVICE_NAME=catalog-indexer      # Adds service label to all metrics
//
// # Custom Metrics
//
// Applications can register additional Prometheus metrics through the
// factory methods, which keep the service label consistent:
//
//	retries := m.CreateCounter(
//	    "quiver_retries_total",
//	    "Total number of retried requests.",
//	    []string{"operation"},
//	)
//	retries.WithLabelValues("decode").Inc()
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe
// for concurrent use by multiple goroutines.
//
// # Related Packages
//
//   - github.com/quiverdb/quiver-go/v1/observability: PrometheusObserver
//     turns operation reports into metrics registered here
package metrics
