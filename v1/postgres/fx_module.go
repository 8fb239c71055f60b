package postgres

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/schema-registry/v1/storage"
)

// FXModule is an fx module that provides the PostgreSQL-backed schema
// storage. It registers the SchemaStore constructor for dependency
// injection, exposes it as the storage.Storage interface, and sets up a
// lifecycle hook to close the connection pool on shutdown.
//
// Dependencies required by this module:
// - A postgres.Config instance must be available in the dependency injection container
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewSchemaStore, // Returns *SchemaStore for internal lifecycle
		ProvideStorage, // Returns storage.Storage interface
	),
	fx.Invoke(RegisterStoreLifecycle),
)

// ProvideStorage wraps the concrete *SchemaStore and returns it as the
// storage.Storage interface. This enables applications to depend on the
// interface rather than the concrete type.
func ProvideStorage(store *SchemaStore) storage.Storage {
	return store
}

// RegisterStoreLifecycle closes the connection pool on application shutdown.
//
// This function is automatically invoked by the FXModule and does not need
// to be called directly in application code.
func RegisterStoreLifecycle(lc fx.Lifecycle, store *SchemaStore) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}
