// Package logger provides structured logging for the Quiver client library.
//
// The logger package wraps Uber's Zap logger behind a small interface shared
// by every other package in this module. Log entries are emitted as JSON with
// ISO8601 timestamps and carry the process id and service name on every line,
// which makes them easy to route into common log collection systems. The
// package integrates with the fx dependency injection framework for easy
// incorporation into applications.
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warning, Error)
//   - JSON output with caller information on every entry
//   - Configuration via struct fields or environment variables
//   - Fx module with automatic flush on shutdown
//
// Basic Usage:
//
//	import "github.com/quiverdb/quiver-go/v1/logger"
//
//	// Create a new logger using the factory
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Debug,
//		ServiceName: "catalog-indexer",
//	})
//
//	// Log with structured fields
//	log.Info("collection created", nil, map[string]interface{}{
//		"collection": "Article",
//		"properties": 12,
//	})
//
//	// Log different levels
//	log.Debug("resolved converter", nil, nil) // Only appears if level is Debug
//	log.Warn("retrying request", nil, nil)
//	log.Error("conversion failed", err, nil)
//
// FX Module Integration:
//
// This package provides an fx module for easy integration with applications
// using the fx dependency injection framework:
//
//	app := fx.New(
//		logger.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// The module flushes buffered entries when the application stops.
//
// Configuration:
//
// The logger can be configured via environment variables:
//
//	QUIVER_LOG_LEVEL=debug              # Log level (debug, info, warning, error)
//	QUIVER_LOG_SERVICE_NAME=my-service  # Service name stamped on every entry
//
// Thread Safety:
//
// All methods on Logger are safe for concurrent use by multiple goroutines.
package logger
