// Package postgres provides the durable, PostgreSQL-backed implementation
// of the storage.Storage contract.
//
// Each lineage is a set of rows in the schema_revisions table keyed by
// (schema_id, revision). Revisions are assigned inside a transaction that
// locks the lineage tip, so they are strictly increasing and gapless per
// schema ID. The conditional-append dedup scan runs in the same
// transaction, making Put atomic with respect to concurrent writers: a
// losing writer either observes the pre-existing matching-hash row or
// receives storage.ErrConflict from the primary key violation.
//
// # Usage
//
//	store, err := postgres.NewSchemaStore(postgres.Config{
//	    Connection: postgres.ConnectionConfig{
//	        Host:   "localhost",
//	        Port:   "5432",
//	        User:   "registry",
//	        DbName: "registry",
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	svc := registry.NewService(store, checks)
//
// # FX Module Integration
//
//	app := fx.New(
//	    postgres.FXModule, // provides storage.Storage
//	    registry.FXModule,
//	    // other modules...
//	)
//
// Schema migration for the schema_revisions table runs automatically on
// startup via gorm's AutoMigrate.
package postgres
