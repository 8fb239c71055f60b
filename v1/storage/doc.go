// Package storage defines the append-only log contract the schema registry
// depends on, the opaque revision version codec, and an in-memory
// implementation of the contract.
//
// A Storage keeps one ordered lineage of records per schema ID. Revision
// numbers are storage-assigned, strictly increasing and gapless within a
// lineage, starting at 0. Records are immutable once appended.
//
// # Conditional Append
//
// Put is the single concurrency-control primitive of the registry. It
// appends a record unless a record with a matching dedup context already
// exists at or after the given horizon revision, in which case the existing
// record's version is returned and nothing is written. This makes identical
// registrations idempotent under retries and under concurrent writers: at
// most one writer wins an append slot, losers either observe the matching
// record or receive ErrConflict.
//
// An empty dedup context never matches anything, so tombstones are always
// appended.
//
// Durable backends implement this same contract; see the postgres package
// for the production implementation.
package storage
