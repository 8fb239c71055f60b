package events

import (
	"context"
	"fmt"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the events package.
// It provides a Notifier built from the configured backend and registers a
// shutdown hook releasing its transport.
//
// Dependencies required by this module:
// - An events.Config instance must be available in the dependency injection container
var FXModule = fx.Module("events",
	fx.Provide(NewNotifier),
	fx.Invoke(RegisterNotifierLifecycle),
)

// NewNotifier builds the Notifier selected by cfg.Backend, defaulting to the
// Kafka backend.
func NewNotifier(cfg Config) (Notifier, error) {
	switch cfg.Backend {
	case BackendRabbit:
		return NewRabbitNotifier(cfg)
	case BackendKafka, "":
		return NewKafkaNotifier(cfg)
	default:
		return nil, fmt.Errorf("events: unknown notifier backend %q", cfg.Backend)
	}
}

// RegisterNotifierLifecycle closes the notifier's transport on application
// shutdown.
//
// This function is automatically invoked by the FXModule and does not need
// to be called directly in application code.
func RegisterNotifierLifecycle(lc fx.Lifecycle, notifier Notifier) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return notifier.Close()
		},
	})
}
