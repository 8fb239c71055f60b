package storage

import (
	"bytes"
	"context"
	"sync"

	"github.com/Aleph-Alpha/schema-registry/v1/schema"
)

type memRecord struct {
	data []byte
	hash []byte
}

// MemStorage is a mutex-guarded in-memory Storage. It honors the full
// conditional-append contract and is used by unit tests and single-node
// deployments without a durable backend.
type MemStorage struct {
	mu       sync.RWMutex
	lineages map[string][]memRecord
	closed   bool
}

// NewMemStorage creates an empty in-memory storage.
// Returns the concrete *MemStorage type.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		lineages: make(map[string][]memRecord),
	}
}

// Get implements Storage.
func (m *MemStorage) Get(ctx context.Context, schemaID string, version schema.Version) (*StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	revision, err := DecodeVersion(version.Bytes())
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	records := m.lineages[schemaID]
	if revision < 0 || revision >= int64(len(records)) {
		return nil, nil
	}
	return &StoredRecord{
		Data:    records[revision].data,
		Version: EncodeVersion(revision),
	}, nil
}

// GetLatest implements Storage.
func (m *MemStorage) GetLatest(ctx context.Context, schemaID string) (*StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	records := m.lineages[schemaID]
	if len(records) == 0 {
		return nil, nil
	}
	last := int64(len(records) - 1)
	return &StoredRecord{
		Data:    records[last].data,
		Version: EncodeVersion(last),
	}, nil
}

// GetAll implements Storage.
func (m *MemStorage) GetAll(ctx context.Context, schemaID string) ([]StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	records := m.lineages[schemaID]
	out := make([]StoredRecord, len(records))
	for i, r := range records {
		out[i] = StoredRecord{
			Data:    r.data,
			Version: EncodeVersion(int64(i)),
		}
	}
	return out, nil
}

// Put implements Storage. The whole decision runs under one lock, so the
// dedup scan and the append are atomic with respect to concurrent writers.
func (m *MemStorage) Put(ctx context.Context, schemaID string, data []byte, hashContext []byte, horizon int64) (schema.Version, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	records := m.lineages[schemaID]
	if len(hashContext) > 0 {
		for i, r := range records {
			if int64(i) >= horizon && bytes.Equal(r.hash, hashContext) {
				return EncodeVersion(int64(i)), nil
			}
		}
	}

	m.lineages[schemaID] = append(records, memRecord{data: data, hash: hashContext})
	return EncodeVersion(int64(len(records))), nil
}

// VersionFromBytes implements Storage.
func (m *MemStorage) VersionFromBytes(version []byte) (int64, error) {
	return DecodeVersion(version)
}

// Close implements Storage. Subsequent operations return ErrClosed.
func (m *MemStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
