// Package backup exports schema lineages to S3-compatible object storage
// for administrative disaster recovery.
//
// The exporter reads the raw append-only log of one schema ID and uploads
// every revision as one object, byte-for-byte as persisted, followed by a
// manifest listing what was exported. Objects are laid out as
//
//	<schema-id>/revision-<n>.json
//	<schema-id>/manifest.json
//
// Uploads of one export run concurrently with a bounded degree of
// parallelism. An export is read-only with respect to the registry; it
// never mutates a lineage.
package backup
