// Package schema defines the core data model of the schema registry: the
// schema type enumeration, schema payloads, opaque revision versions, the
// content hash used for deduplication, and the persisted record wire format.
//
// A schema lineage is identified by an opaque schema ID (one per topic). Each
// entry in a lineage is an immutable revision carrying a type tag, an opaque
// payload, the submitting user, a deleted flag, a creation timestamp and an
// ordered set of string properties. A revision with Deleted set, type NONE
// and an empty payload is a tombstone: it closes the lineage for
// compatibility purposes until a new revision is registered.
//
// The package does not parse or validate schema payloads. Payloads are opaque
// byte blobs; only the content hash and the pluggable compatibility checkers
// ever look inside them.
//
// # Content Hash
//
// Two revisions with the same (type, payload) pair produce the same Hash and
// are treated as the same schema for deduplication, independent of user,
// timestamp or properties:
//
//	h := schema.HashOf(data)
//	if h.Equal(schema.HashOf(other)) {
//	    // same schema
//	}
//
// # Wire Format
//
// Record is the stable persisted representation of a revision. Encode and
// Decode round-trip a record through its canonical byte form; decoding
// collapses duplicate property keys last-write-wins.
package schema
