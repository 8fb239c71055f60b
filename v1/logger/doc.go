// Package logger provides structured logging for the schema registry.
//
// It wraps Uber's Zap with log levels, structured key-value fields and
// optional distributed tracing correlation, and integrates with the fx
// dependency injection framework.
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/Aleph-Alpha/schema-registry/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "schema-registry",
//	})
//
//	log.Info("schema admitted", nil, map[string]interface{}{
//		"schema_id": "tenant/ns/topic",
//		"version":   3,
//	})
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info, ServiceName: "schema-registry"}
//		}),
//		// ... other modules
//	)
//	app.Run()
//
// # Tracing Integration
//
// When EnableTracing is set, the *WithContext methods extract the
// OpenTelemetry trace and span IDs from the context and attach them as
// trace_id and span_id fields, correlating log entries with distributed
// traces.
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
