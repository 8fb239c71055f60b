package backup

import (
	"go.uber.org/fx"
)

// FXModule defines the Fx module for the backup package.
// It provides the lineage exporter built from the configured object storage
// and the storage.Storage instance available in the container.
//
// Dependencies required by this module:
// - A backup.Config instance must be available in the dependency injection container
// - A storage.Storage implementation (e.g. from the postgres module)
var FXModule = fx.Module("backup",
	fx.Provide(NewExporter),
)
