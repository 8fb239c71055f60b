package registry

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/schema-registry/v1/compatibility"
	"github.com/Aleph-Alpha/schema-registry/v1/events"
	"github.com/Aleph-Alpha/schema-registry/v1/logger"
	"github.com/Aleph-Alpha/schema-registry/v1/observability"
	"github.com/Aleph-Alpha/schema-registry/v1/storage"
)

// FXModule defines the Fx module for the registry package.
// It builds the service from the storage and checker registry available in
// the container, attaches the optional logger, observer and notifier, and
// registers a shutdown hook closing the service.
//
// Dependencies required by this module:
// - A storage.Storage implementation (e.g. from the postgres module)
// - A *compatibility.Registry
// - Optionally a *logger.Logger, an observability.Observer and an events.Notifier
var FXModule = fx.Module("registry",
	fx.Provide(
		newServiceFromParams,
		func(s *SchemaRegistry) Service { return s },
	),
	fx.Invoke(RegisterServiceLifecycle),
)

// ServiceParams collects the service dependencies from the fx container.
// Logger, observer and notifier are optional; the service runs silently
// without them.
type ServiceParams struct {
	fx.In

	Storage  storage.Storage
	Checks   *compatibility.Registry
	Logger   *logger.Logger         `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Notifier events.Notifier        `optional:"true"`
}

func newServiceFromParams(p ServiceParams) *SchemaRegistry {
	s := NewService(p.Storage, p.Checks)
	if p.Logger != nil {
		s.WithLogger(p.Logger)
	}
	if p.Observer != nil {
		s.WithObserver(p.Observer)
	}
	if p.Notifier != nil {
		s.WithNotifier(p.Notifier)
	}
	return s
}

// RegisterServiceLifecycle closes the service, and with it the storage
// resource, on application shutdown.
//
// This function is automatically invoked by the FXModule and does not need
// to be called directly in application code.
func RegisterServiceLifecycle(lc fx.Lifecycle, s *SchemaRegistry) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return s.Close()
		},
	})
}
