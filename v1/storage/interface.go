package storage

import (
	"context"

	"github.com/Aleph-Alpha/schema-registry/v1/schema"
)

// StoredRecord is one raw entry of a lineage: the encoded record bytes plus
// the storage-assigned version.
type StoredRecord struct {
	Data    []byte
	Version schema.Version
}

// Storage is the append-only, per-identity ordered log the registry is built
// on. Implementations own durability; the registry owns only the decision of
// what to append and when.
//
// Absence is represented as a (nil, nil) return, never as an error.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Get returns the record stored at the given version of the lineage, or
	// nil if the lineage or the version does not exist.
	Get(ctx context.Context, schemaID string, version schema.Version) (*StoredRecord, error)

	// GetLatest returns the newest record of the lineage, or nil if the
	// lineage has no records.
	GetLatest(ctx context.Context, schemaID string) (*StoredRecord, error)

	// GetAll returns the full lineage, oldest to newest.
	GetAll(ctx context.Context, schemaID string) ([]StoredRecord, error)

	// Put conditionally appends a record. If hashContext is non-empty and a
	// record with an equal hash context exists at or after horizon, that
	// record's version is returned without a new append. horizon may be
	// NoLowerBound to consider the whole lineage.
	Put(ctx context.Context, schemaID string, data []byte, hashContext []byte, horizon int64) (schema.Version, error)

	// VersionFromBytes decodes the storage-native version encoding back into
	// a revision number. It is the inverse of the encoding used for the
	// versions this storage hands out.
	VersionFromBytes(version []byte) (int64, error)

	// Close releases the storage resource. Idempotent.
	Close() error
}

// NoLowerBound is the horizon sentinel meaning "no lower bound": every
// revision of the lineage is eligible for dedup matching.
const NoLowerBound int64 = -1
