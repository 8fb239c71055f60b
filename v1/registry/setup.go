package registry

import (
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/schema-registry/v1/compatibility"
	"github.com/Aleph-Alpha/schema-registry/v1/events"
	"github.com/Aleph-Alpha/schema-registry/v1/logger"
	"github.com/Aleph-Alpha/schema-registry/v1/observability"
	"github.com/Aleph-Alpha/schema-registry/v1/storage"
)

// SchemaRegistry is the orchestrator of the registry: lineage traversal,
// compatibility-horizon computation, checker dispatch, tombstone handling
// and the conditional-append protocol.
//
// SchemaRegistry implements the Service interface.
type SchemaRegistry struct {
	// store is the append-only per-identity log the registry is built on
	store storage.Storage

	// checks is the schema type to compatibility checker dispatch table
	checks *compatibility.Registry

	// clock is the injectable time source for revision timestamps
	clock Clock

	// log provides optional structured logging; nil disables logging
	log *logger.Logger

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// notifier receives best-effort change notifications; nil disables them
	notifier events.Notifier

	// tracer records spans around registry operations; nil disables tracing
	tracer trace.Tracer

	closeOnce sync.Once
	closeErr  error
}

// NewService creates a schema registry service on top of the given storage
// and checker dispatch table, using the system clock for timestamps.
// Returns the concrete *SchemaRegistry type.
func NewService(store storage.Storage, checks *compatibility.Registry) *SchemaRegistry {
	return &SchemaRegistry{
		store:  store,
		checks: checks,
		clock:  SystemClock(),
	}
}

// WithClock replaces the time source used for revision timestamps. Intended
// for tests that need deterministic timestamps.
func (s *SchemaRegistry) WithClock(clock Clock) *SchemaRegistry {
	s.clock = clock
	return s
}

// WithLogger attaches a structured logger to the service.
// This method uses the builder pattern and returns the service for chaining.
func (s *SchemaRegistry) WithLogger(log *logger.Logger) *SchemaRegistry {
	s.log = log
	return s
}

// WithObserver attaches an observer for tracking operations.
// This method uses the builder pattern and returns the service for chaining.
func (s *SchemaRegistry) WithObserver(observer observability.Observer) *SchemaRegistry {
	s.observer = observer
	return s
}

// WithNotifier attaches a change notifier. Notifications are best-effort:
// a notifier failure is logged and never fails the caller's operation.
func (s *SchemaRegistry) WithNotifier(notifier events.Notifier) *SchemaRegistry {
	s.notifier = notifier
	return s
}

// WithTracer attaches an OpenTelemetry tracer recording one span per
// registry operation.
func (s *SchemaRegistry) WithTracer(tracer trace.Tracer) *SchemaRegistry {
	s.tracer = tracer
	return s
}

// Close implements Service. It releases the storage resource; subsequent
// calls return the first result.
func (s *SchemaRegistry) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.store.Close()
	})
	return s.closeErr
}
