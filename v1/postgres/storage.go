package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aleph-Alpha/schema-registry/v1/schema"
	"github.com/Aleph-Alpha/schema-registry/v1/storage"
)

// uniqueViolation is the PostgreSQL error code raised when a concurrent
// writer already took the revision slot.
const uniqueViolation = "23505"

// Get implements storage.Storage.
func (s *SchemaStore) Get(ctx context.Context, schemaID string, version schema.Version) (*storage.StoredRecord, error) {
	revision, err := storage.DecodeVersion(version.Bytes())
	if err != nil {
		return nil, err
	}

	var row schemaRevision
	err = s.db.WithContext(ctx).
		Where("schema_id = ? AND revision = ?", schemaID, revision).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to read %q revision %d: %w", schemaID, revision, err)
	}
	return storedRecord(row), nil
}

// GetLatest implements storage.Storage.
func (s *SchemaStore) GetLatest(ctx context.Context, schemaID string) (*storage.StoredRecord, error) {
	var row schemaRevision
	err := s.db.WithContext(ctx).
		Where("schema_id = ?", schemaID).
		Order("revision DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to read latest revision of %q: %w", schemaID, err)
	}
	return storedRecord(row), nil
}

// GetAll implements storage.Storage.
func (s *SchemaStore) GetAll(ctx context.Context, schemaID string) ([]storage.StoredRecord, error) {
	var rows []schemaRevision
	err := s.db.WithContext(ctx).
		Where("schema_id = ?", schemaID).
		Order("revision ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to read lineage of %q: %w", schemaID, err)
	}

	out := make([]storage.StoredRecord, len(rows))
	for i, row := range rows {
		out[i] = *storedRecord(row)
	}
	return out, nil
}

// Put implements storage.Storage. The dedup scan and the append run in one
// transaction holding a lock on the lineage tip. Two writers racing on an
// empty lineage both compute revision 0; the loser's insert hits the primary
// key and surfaces as storage.ErrConflict.
func (s *SchemaStore) Put(ctx context.Context, schemaID string, data []byte, hashContext []byte, horizon int64) (schema.Version, error) {
	var version schema.Version

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(hashContext) > 0 {
			var existing schemaRevision
			err := tx.
				Where("schema_id = ? AND revision >= ? AND hash = ?", schemaID, horizon, hashContext).
				Order("revision ASC").
				First(&existing).Error
			if err == nil {
				version = storage.EncodeVersion(existing.Revision)
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		next := int64(0)
		var latest schemaRevision
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("schema_id = ?", schemaID).
			Order("revision DESC").
			First(&latest).Error
		switch {
		case err == nil:
			next = latest.Revision + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first revision of the lineage
		default:
			return err
		}

		row := schemaRevision{
			SchemaID:  schemaID,
			Revision:  next,
			Payload:   data,
			Hash:      hashContext,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		version = storage.EncodeVersion(next)
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", storage.ErrConflict, err)
		}
		return nil, fmt.Errorf("postgres: failed to append to %q: %w", schemaID, err)
	}
	return version, nil
}

// VersionFromBytes implements storage.Storage.
func (s *SchemaStore) VersionFromBytes(version []byte) (int64, error) {
	return storage.DecodeVersion(version)
}

func storedRecord(row schemaRevision) *storage.StoredRecord {
	return &storage.StoredRecord{
		Data:    row.Payload,
		Version: storage.EncodeVersion(row.Revision),
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
