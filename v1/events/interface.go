package events

import "context"

// Event describes one admitted change to a schema lineage.
type Event struct {
	// SchemaID is the lineage the change belongs to.
	SchemaID string `json:"schema_id"`

	// Revision is the storage-assigned revision number of the new entry.
	Revision int64 `json:"revision"`

	// Type is the canonical schema type name; "NONE" for tombstones.
	Type string `json:"type"`

	// User is the principal that submitted the change.
	User string `json:"user"`

	// Deleted marks tombstone events.
	Deleted bool `json:"deleted"`

	// Timestamp is the revision's creation time in milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Notifier delivers schema change events to the broker's event stream.
// Implementations must be safe for concurrent use.
type Notifier interface {
	// SchemaAdmitted publishes an event for a newly admitted live revision.
	SchemaAdmitted(ctx context.Context, ev Event) error

	// SchemaDeleted publishes an event for a newly appended tombstone.
	SchemaDeleted(ctx context.Context, ev Event) error

	// Close releases the underlying transport.
	Close() error
}
