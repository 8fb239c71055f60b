// Package observability defines the shared observer contract used by the
// registry components to report operations to metrics or tracing backends
// without depending on a concrete implementation.
//
// Components hold an optional Observer and notify it after each operation;
// a nil observer disables observation with no further cost. The prometheus
// implementation lives in the metrics package.
package observability

import "time"

// OperationContext carries everything an observer needs to record one
// finished operation.
type OperationContext struct {
	// Component is the emitting component, e.g. "registry" or "storage".
	Component string

	// Operation is the operation name, e.g. "put_schema".
	Operation string

	// Resource is the primary resource operated on (the schema ID).
	Resource string

	// SubResource carries additional context like a revision number.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the operation outcome; nil on success.
	Error error

	// Size is an operation-defined payload size in bytes, 0 if not tracked.
	Size int64

	// Metadata carries optional extra dimensions.
	Metadata map[string]interface{}
}

// Observer receives operation notifications. Implementations must be safe
// for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
