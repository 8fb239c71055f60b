// Package metrics provides Prometheus-based monitoring for the schema
// registry.
//
// It exposes a configurable /metrics endpoint, registers Go runtime and
// process collectors, and ships a prometheus-backed implementation of the
// observability.Observer contract that the registry and storage components
// report their operations to.
//
// # Direct Usage (Without FX)
//
//	import "github.com/Aleph-Alpha/schema-registry/v1/metrics"
//
//	cfg := metrics.Config{
//		Address:                 ":9090",
//		ServiceName:             "schema-registry",
//		EnableDefaultCollectors: true,
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	svc := registry.NewService(store, checks).WithObserver(m.Observer())
//
// # FX Module Integration
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{Address: ":9090", ServiceName: "schema-registry"}
//	    }),
//	    // other modules...
//	)
//
// Access metrics at http://localhost:9090/metrics.
//
// # Emitted Metrics
//
//   - schema_registry_operations_total{component,operation,status}
//   - schema_registry_operation_duration_seconds{component,operation}
//
// plus the standard Go, process and build info collectors when enabled.
package metrics
