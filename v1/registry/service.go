package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/schema-registry/v1/compatibility"
	"github.com/Aleph-Alpha/schema-registry/v1/events"
	"github.com/Aleph-Alpha/schema-registry/v1/schema"
	"github.com/Aleph-Alpha/schema-registry/v1/storage"
)

// GetSchema implements Service. It resolves the latest revision and filters
// tombstones: a lineage whose latest revision is a tombstone reads as
// absent.
func (s *SchemaRegistry) GetSchema(ctx context.Context, schemaID string) (res *schema.SchemaAndMetadata, err error) {
	start := time.Now()
	defer func() { s.observeOperation("get_schema", schemaID, "", time.Since(start), err, 0, nil) }()

	latest, err := s.getLatest(ctx, schemaID)
	if err != nil {
		return nil, err
	}
	if latest == nil || latest.Schema.Deleted {
		return nil, nil
	}
	return latest, nil
}

// GetSchemaByVersion implements Service. Unlike GetSchema it does not filter
// tombstones.
func (s *SchemaRegistry) GetSchemaByVersion(ctx context.Context, schemaID string, version schema.Version) (res *schema.SchemaAndMetadata, err error) {
	start := time.Now()
	defer func() { s.observeOperation("get_schema_by_version", schemaID, "", time.Since(start), err, 0, nil) }()

	stored, err := s.store.Get(ctx, schemaID, version)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	return s.resolve(schemaID, stored)
}

// GetAllSchemas implements Service. The lineage is returned oldest to
// newest, tombstones included, in storage order.
func (s *SchemaRegistry) GetAllSchemas(ctx context.Context, schemaID string) (res []*schema.SchemaAndMetadata, err error) {
	start := time.Now()
	defer func() { s.observeOperation("get_all_schemas", schemaID, "", time.Since(start), err, 0, nil) }()

	stored, err := s.store.GetAll(ctx, schemaID)
	if err != nil {
		return nil, err
	}
	out := make([]*schema.SchemaAndMetadata, 0, len(stored))
	for i := range stored {
		resolved, err := s.resolve(schemaID, &stored[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// PutSchemaIfAbsent implements Service.
//
// The admission protocol:
//  1. Read the latest revision.
//  2. Compute the compatibility horizon for the requested strategy,
//     validating the candidate on the way. A tombstone at the tip resets the
//     horizon to the tombstone's revision and skips validation entirely.
//  3. Issue one conditional append with the candidate's content hash as
//     dedup context: a byte-identical registration at or after the horizon
//     resolves to the existing revision's version.
//
// Validation failure aborts the whole operation before any write.
func (s *SchemaRegistry) PutSchemaIfAbsent(ctx context.Context, schemaID string, candidate schema.Data, strategy compatibility.Strategy) (version schema.Version, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, "registry.put_schema_if_absent", schemaID)
	defer func() {
		endSpan(span, err)
		s.observeOperation("put_schema_if_absent", schemaID, "", time.Since(start), err, int64(len(candidate.Payload)), nil)
	}()

	latest, err := s.getLatest(ctx, schemaID)
	if err != nil {
		return nil, err
	}

	var horizon int64
	switch {
	case latest == nil:
		horizon = NoDeletedVersion

	case latest.Schema.Deleted:
		// Nothing live to compare against; the tombstone's revision still
		// bounds dedup so pre-deletion revisions are never resurrected.
		horizon, err = s.revisionOf(latest.Version)
		if err != nil {
			return nil, err
		}
		s.logDebug(ctx, "lineage tip is a tombstone, skipping compatibility validation", map[string]interface{}{
			"schema_id": schemaID,
			"horizon":   horizon,
		})

	case strategy.IsTransitive():
		horizon, err = s.checkCompatibilityWithAll(ctx, schemaID, candidate, strategy)
		if err != nil {
			return nil, err
		}

	default:
		if err = s.checkCompatibilityWithLatest(ctx, schemaID, candidate, strategy); err != nil {
			return nil, err
		}
		horizon, err = s.nonTransitiveHorizon(ctx, schemaID)
		if err != nil {
			return nil, err
		}
	}

	candidate.Deleted = false
	record := schema.NewRecord(schemaID, candidate, s.clock.Now().UnixMilli())
	raw, err := record.Encode()
	if err != nil {
		return nil, err
	}
	hash := schema.HashOf(candidate)

	version, err = s.store.Put(ctx, schemaID, raw, hash.Bytes(), horizon)
	if err != nil {
		return nil, err
	}

	revision, revErr := s.revisionOf(version)
	if revErr == nil {
		s.logInfo(ctx, "schema admitted", map[string]interface{}{
			"schema_id": schemaID,
			"revision":  revision,
			"type":      candidate.Type.String(),
			"strategy":  strategy.String(),
			"hash":      hash.String(),
		})
		s.notify(ctx, events.Event{
			SchemaID:  schemaID,
			Revision:  revision,
			Type:      candidate.Type.String(),
			User:      candidate.User,
			Timestamp: record.Timestamp,
		})
	}
	return version, nil
}

// DeleteSchema implements Service. Deletion appends a tombstone; it never
// removes revisions. Tombstones carry an empty dedup context so they are
// always appended, even onto an already-deleted or empty lineage, and always
// become the new tip.
func (s *SchemaRegistry) DeleteSchema(ctx context.Context, schemaID, user string) (version schema.Version, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, "registry.delete_schema", schemaID)
	defer func() {
		endSpan(span, err)
		s.observeOperation("delete_schema", schemaID, "", time.Since(start), err, 0, nil)
	}()

	record := schema.Tombstone(schemaID, user, s.clock.Now().UnixMilli())
	raw, err := record.Encode()
	if err != nil {
		return nil, err
	}

	horizon, err := s.nonTransitiveHorizon(ctx, schemaID)
	if err != nil {
		return nil, err
	}

	version, err = s.store.Put(ctx, schemaID, raw, nil, horizon)
	if err != nil {
		return nil, err
	}

	revision, revErr := s.revisionOf(version)
	if revErr == nil {
		s.logInfo(ctx, "schema deleted", map[string]interface{}{
			"schema_id": schemaID,
			"revision":  revision,
			"user":      user,
		})
		s.notify(ctx, events.Event{
			SchemaID:  schemaID,
			Revision:  revision,
			Type:      schema.TypeNone.String(),
			User:      user,
			Deleted:   true,
			Timestamp: record.Timestamp,
		})
	}
	return version, nil
}

// IsCompatible implements Service. Success resolves true; incompatibility is
// the error path, never (false, nil).
func (s *SchemaRegistry) IsCompatible(ctx context.Context, schemaID string, candidate schema.Data, strategy compatibility.Strategy) (bool, error) {
	if err := s.CheckCompatible(ctx, schemaID, candidate, strategy); err != nil {
		return false, err
	}
	return true, nil
}

// CheckCompatible implements Service.
func (s *SchemaRegistry) CheckCompatible(ctx context.Context, schemaID string, candidate schema.Data, strategy compatibility.Strategy) (err error) {
	start := time.Now()
	defer func() { s.observeOperation("check_compatible", schemaID, "", time.Since(start), err, 0, nil) }()

	if strategy.IsTransitive() {
		_, err = s.checkCompatibilityWithAll(ctx, schemaID, candidate, strategy)
		return err
	}
	return s.checkCompatibilityWithLatest(ctx, schemaID, candidate, strategy)
}

// FindSchemaVersion implements Service. The scan covers only the surviving
// (post-tombstone) lineage, oldest first.
func (s *SchemaRegistry) FindSchemaVersion(ctx context.Context, schemaID string, candidate schema.Data) (revision int64, err error) {
	start := time.Now()
	defer func() { s.observeOperation("find_schema_version", schemaID, "", time.Since(start), err, 0, nil) }()

	trimmed, err := s.trimDeletedSchemas(ctx, schemaID)
	if err != nil {
		return NoSchemaVersion, err
	}
	hash := schema.HashOf(candidate)
	for _, existing := range trimmed {
		if hash.Equal(schema.HashOf(existing.Schema)) {
			return s.revisionOf(existing.Version)
		}
	}
	return NoSchemaVersion, nil
}

// VersionFromBytes implements Service by delegating to the storage's version
// codec.
func (s *SchemaRegistry) VersionFromBytes(version []byte) (int64, error) {
	return s.store.VersionFromBytes(version)
}

// trimDeletedSchemas returns the revisions that matter for compatibility:
// the contiguous suffix strictly after the most recent tombstone. A
// tombstone at the tip means the lineage is currently deleted and nothing
// survives.
func (s *SchemaRegistry) trimDeletedSchemas(ctx context.Context, schemaID string) ([]*schema.SchemaAndMetadata, error) {
	list, err := s.GetAllSchemas(ctx, schemaID)
	if err != nil {
		return nil, err
	}
	lastIndex := len(list) - 1
	for i := lastIndex; i >= 0; i-- {
		if list[i].Schema.Deleted {
			if i == lastIndex {
				return nil, nil
			}
			return list[i+1:], nil
		}
	}
	return list, nil
}

// checkCompatibleWith validates one candidate against one existing revision.
// A primitive existing type requires an identical candidate type; equal
// content hashes are trivially compatible; everything else is dispatched to
// the checker for the candidate's type.
func (s *SchemaRegistry) checkCompatibleWith(existing *schema.SchemaAndMetadata, candidate schema.Data, strategy compatibility.Strategy) error {
	existingData := existing.Schema
	if existingData.Type.IsPrimitive() {
		if candidate.Type != existingData.Type {
			return compatibility.Incompatible(
				"incompatible primitive schema: exists schema type %s, new schema type %s",
				existingData.Type, candidate.Type)
		}
		return nil
	}
	if schema.HashOf(candidate).Equal(schema.HashOf(existingData)) {
		return nil
	}
	return s.checks.ForType(candidate.Type).CheckCompatible(
		[]schema.Data{existingData}, candidate, strategy)
}

// checkCompatibilityWithLatest validates the candidate against the latest
// live revision only.
func (s *SchemaRegistry) checkCompatibilityWithLatest(ctx context.Context, schemaID string, candidate schema.Data, strategy compatibility.Strategy) error {
	existing, err := s.GetSchema(ctx, schemaID)
	if err != nil {
		return err
	}
	if existing == nil {
		return compatibility.Incompatible("no existing schema for %q", schemaID)
	}
	if err := s.checkCompatibleWith(existing, candidate, strategy); err != nil {
		s.logWarn(ctx, "schema rejected by compatibility check", err, map[string]interface{}{
			"schema_id": schemaID,
			"strategy":  strategy.String(),
		})
		return err
	}
	return nil
}

// checkCompatibilityWithAll validates the candidate against every surviving
// revision and returns the oldest surviving revision's number as the
// compatibility horizon. An empty surviving list yields NoDeletedVersion
// with no check: there is nothing to compare against.
func (s *SchemaRegistry) checkCompatibilityWithAll(ctx context.Context, schemaID string, candidate schema.Data, strategy compatibility.Strategy) (int64, error) {
	trimmed, err := s.trimDeletedSchemas(ctx, schemaID)
	if err != nil {
		return NoDeletedVersion, err
	}
	if len(trimmed) == 0 {
		return NoDeletedVersion, nil
	}

	existing := make([]schema.Data, len(trimmed))
	for i, sm := range trimmed {
		existing[i] = sm.Schema
	}
	if err := s.checks.ForType(candidate.Type).CheckCompatible(existing, candidate, strategy); err != nil {
		s.logWarn(ctx, "schema rejected by transitive compatibility check", err, map[string]interface{}{
			"schema_id": schemaID,
			"strategy":  strategy.String(),
			"revisions": len(existing),
		})
		return NoDeletedVersion, err
	}
	return s.revisionOf(trimmed[0].Version)
}

// nonTransitiveHorizon computes the horizon used by non-transitive puts and
// by deletes: one below the oldest surviving revision, or NoDeletedVersion
// when nothing survives trimming.
func (s *SchemaRegistry) nonTransitiveHorizon(ctx context.Context, schemaID string) (int64, error) {
	trimmed, err := s.trimDeletedSchemas(ctx, schemaID)
	if err != nil {
		return NoDeletedVersion, err
	}
	if len(trimmed) == 0 {
		return NoDeletedVersion, nil
	}
	oldest, err := s.revisionOf(trimmed[0].Version)
	if err != nil {
		return NoDeletedVersion, err
	}
	return oldest - 1, nil
}

// getLatest resolves the newest revision of the lineage without filtering
// tombstones, or nil when the lineage is empty.
func (s *SchemaRegistry) getLatest(ctx context.Context, schemaID string) (*schema.SchemaAndMetadata, error) {
	stored, err := s.store.GetLatest(ctx, schemaID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	return s.resolve(schemaID, stored)
}

// resolve decodes one stored record into its read-time projection.
func (s *SchemaRegistry) resolve(schemaID string, stored *storage.StoredRecord) (*schema.SchemaAndMetadata, error) {
	record, err := schema.DecodeRecord(stored.Data)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to decode record of %q: %w", schemaID, err)
	}
	return &schema.SchemaAndMetadata{
		ID:      schemaID,
		Schema:  record.SchemaData(),
		Version: stored.Version,
	}, nil
}

// revisionOf decodes a version through the storage's codec.
func (s *SchemaRegistry) revisionOf(version schema.Version) (int64, error) {
	return s.store.VersionFromBytes(version.Bytes())
}

// notify delivers a change event to the configured notifier, best-effort.
func (s *SchemaRegistry) notify(ctx context.Context, ev events.Event) {
	if s.notifier == nil {
		return
	}
	var err error
	if ev.Deleted {
		err = s.notifier.SchemaDeleted(ctx, ev)
	} else {
		err = s.notifier.SchemaAdmitted(ctx, ev)
	}
	if err != nil {
		s.logWarn(ctx, "failed to publish schema change event", err, map[string]interface{}{
			"schema_id": ev.SchemaID,
			"revision":  ev.Revision,
		})
	}
}
