// Package registry implements the schema-versioning and
// compatibility-enforcement engine that governs how a topic's data format
// may evolve over time.
//
// For each schema ID (one per topic) the service maintains an ordered
// lineage of immutable revisions in an append-only Storage and decides
// whether a newly proposed revision may be admitted under a configurable
// compatibility strategy, without ever losing a historical revision needed
// to re-validate old consumers.
//
// # Lineage Model
//
// A lineage is in one of three states: empty (no revisions), live (latest
// revision is a schema) or deleted (latest revision is a tombstone).
// Deleting a lineage appends a tombstone rather than removing anything; a
// subsequent registration revives the lineage with a fresh compatibility
// horizon, so no check ever crosses a tombstone.
//
// # Admission
//
// PutSchemaIfAbsent reads the latest revision, computes the compatibility
// horizon for the requested strategy, validates the candidate against the
// surviving revisions through the compatibility dispatch table, and issues a
// single conditional append. Deduplication is by content hash: registering a
// byte-identical (type, payload) pair resolves to the existing revision's
// version, making the operation idempotent under retries and concurrent
// identical registrations.
//
// # Concurrency
//
// The service holds no mutable shared state beyond the storage handle and
// the checker dispatch table, both read-mostly and safe for concurrent use.
// Operations against different schema IDs are fully independent. Operations
// against the same ID are not serialized here: mutual exclusion is delegated
// to the conditional-append primitive of the storage, and a losing writer
// either observes the pre-existing matching revision or receives a conflict,
// which the service surfaces unchanged without retrying.
//
// # Usage
//
//	store := storage.NewMemStorage()
//	checks := compatibility.NewRegistry()
//	checks.Register(schema.TypeAvro, avroCheck)
//
//	svc := registry.NewService(store, checks)
//	defer svc.Close()
//
//	version, err := svc.PutSchemaIfAbsent(ctx, "tenant/ns/topic", candidate, compatibility.Backward)
package registry
