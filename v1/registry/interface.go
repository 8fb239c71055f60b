package registry

import (
	"context"

	"github.com/Aleph-Alpha/schema-registry/v1/compatibility"
	"github.com/Aleph-Alpha/schema-registry/v1/schema"
)

// NoDeletedVersion is the compatibility horizon sentinel used when a lineage
// has no tombstone to bound dedup lookups: every revision is eligible.
const NoDeletedVersion int64 = -1

// NoSchemaVersion is returned by FindSchemaVersion when no surviving revision
// matches the candidate's content hash.
const NoSchemaVersion int64 = -1

// Service is the public contract of the schema registry engine, consumed by
// the administrative facade. All blocking operations take a context; absence
// is reported as a nil result, incompatibility as a typed error.
//
// This interface is implemented by the concrete *SchemaRegistry type.
type Service interface {
	// GetSchema returns the latest live revision of the lineage, or nil if
	// the lineage has no revisions or its latest revision is a tombstone.
	GetSchema(ctx context.Context, schemaID string) (*schema.SchemaAndMetadata, error)

	// GetSchemaByVersion returns the revision stored at the given version,
	// or nil if absent. Tombstones are returned as-is; callers needing
	// "current" semantics must check the Deleted flag or use GetSchema.
	GetSchemaByVersion(ctx context.Context, schemaID string, version schema.Version) (*schema.SchemaAndMetadata, error)

	// GetAllSchemas returns the full lineage, oldest to newest, tombstones
	// included.
	GetAllSchemas(ctx context.Context, schemaID string) ([]*schema.SchemaAndMetadata, error)

	// PutSchemaIfAbsent admits a new revision under the given strategy, or
	// returns the version of an existing byte-identical one.
	PutSchemaIfAbsent(ctx context.Context, schemaID string, candidate schema.Data, strategy compatibility.Strategy) (schema.Version, error)

	// DeleteSchema appends a tombstone to the lineage and returns its
	// version.
	DeleteSchema(ctx context.Context, schemaID, user string) (schema.Version, error)

	// IsCompatible runs the same validation as PutSchemaIfAbsent without
	// writing. It resolves true on success; incompatibility is reported as
	// an error, never as (false, nil).
	IsCompatible(ctx context.Context, schemaID string, candidate schema.Data, strategy compatibility.Strategy) (bool, error)

	// CheckCompatible is IsCompatible exposed as a pure check: nil on
	// success, an IncompatibleSchemaError otherwise.
	CheckCompatible(ctx context.Context, schemaID string, candidate schema.Data, strategy compatibility.Strategy) error

	// FindSchemaVersion scans the surviving (post-tombstone) lineage for a
	// revision whose content hash equals the candidate's and returns the
	// oldest match's revision number, or NoSchemaVersion.
	FindSchemaVersion(ctx context.Context, schemaID string, candidate schema.Data) (int64, error)

	// VersionFromBytes decodes a storage-native version encoding back into a
	// revision number.
	VersionFromBytes(version []byte) (int64, error)

	// Close releases the storage resource. Idempotent.
	Close() error
}
