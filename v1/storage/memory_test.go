package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRevision(t *testing.T, m *MemStorage, v []byte) int64 {
	t.Helper()
	rev, err := m.VersionFromBytes(v)
	require.NoError(t, err)
	return rev
}

func TestMemStorage_AppendAssignsIncreasingRevisions(t *testing.T) {
	ctx := context.Background()
	m := NewMemStorage()

	for want := int64(0); want < 5; want++ {
		v, err := m.Put(ctx, "t1", []byte{byte(want)}, nil, NoLowerBound)
		require.NoError(t, err)
		assert.Equal(t, want, mustRevision(t, m, v.Bytes()))
	}
}

func TestMemStorage_LineagesAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := NewMemStorage()

	v1, err := m.Put(ctx, "a", []byte("x"), nil, NoLowerBound)
	require.NoError(t, err)
	v2, err := m.Put(ctx, "b", []byte("y"), nil, NoLowerBound)
	require.NoError(t, err)

	assert.Equal(t, int64(0), mustRevision(t, m, v1.Bytes()))
	assert.Equal(t, int64(0), mustRevision(t, m, v2.Bytes()))
}

func TestMemStorage_DedupAtOrAfterHorizon(t *testing.T) {
	ctx := context.Background()
	m := NewMemStorage()
	hash := []byte("h1")

	v0, err := m.Put(ctx, "t1", []byte("r0"), hash, NoLowerBound)
	require.NoError(t, err)

	// Identical hash with no lower bound resolves to the existing record.
	v, err := m.Put(ctx, "t1", []byte("r0-retry"), hash, NoLowerBound)
	require.NoError(t, err)
	assert.Equal(t, v0, v)

	// A horizon above the existing record forces a fresh append.
	v, err = m.Put(ctx, "t1", []byte("r1"), hash, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mustRevision(t, m, v.Bytes()))
}

func TestMemStorage_EmptyHashContextNeverDedups(t *testing.T) {
	ctx := context.Background()
	m := NewMemStorage()

	v0, err := m.Put(ctx, "t1", []byte("tomb"), nil, NoLowerBound)
	require.NoError(t, err)
	v1, err := m.Put(ctx, "t1", []byte("tomb"), nil, NoLowerBound)
	require.NoError(t, err)

	assert.NotEqual(t, v0, v1)
}

func TestMemStorage_GetAndGetLatest(t *testing.T) {
	ctx := context.Background()
	m := NewMemStorage()

	rec, err := m.GetLatest(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = m.Put(ctx, "t1", []byte("r0"), nil, NoLowerBound)
	require.NoError(t, err)
	_, err = m.Put(ctx, "t1", []byte("r1"), nil, NoLowerBound)
	require.NoError(t, err)

	latest, err := m.GetLatest(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, []byte("r1"), latest.Data)

	first, err := m.Get(ctx, "t1", EncodeVersion(0))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, []byte("r0"), first.Data)

	missing, err := m.Get(ctx, "t1", EncodeVersion(7))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemStorage_GetAllInOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemStorage()

	for i := 0; i < 3; i++ {
		_, err := m.Put(ctx, "t1", []byte{byte(i)}, nil, NoLowerBound)
		require.NoError(t, err)
	}

	all, err := m.GetAll(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, rec := range all {
		assert.Equal(t, []byte{byte(i)}, rec.Data)
		assert.Equal(t, int64(i), mustRevision(t, m, rec.Version.Bytes()))
	}
}

func TestMemStorage_ConcurrentIdenticalPuts(t *testing.T) {
	ctx := context.Background()
	m := NewMemStorage()
	hash := []byte("same")

	const writers = 16
	versions := make([]int64, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := m.Put(ctx, "t1", []byte("payload"), hash, NoLowerBound)
			if err != nil {
				t.Error(err)
				return
			}
			rev, err := m.VersionFromBytes(v.Bytes())
			if err != nil {
				t.Error(err)
				return
			}
			versions[i] = rev
		}(i)
	}
	wg.Wait()

	for _, rev := range versions {
		assert.Equal(t, int64(0), rev)
	}
	all, err := m.GetAll(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemStorage_Closed(t *testing.T) {
	ctx := context.Background()
	m := NewMemStorage()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // idempotent

	_, err := m.Put(ctx, "t1", []byte("x"), nil, NoLowerBound)
	assert.True(t, IsClosedError(err))
	_, err = m.GetLatest(ctx, "t1")
	assert.True(t, IsClosedError(err))
}

func TestDecodeVersion_Malformed(t *testing.T) {
	_, err := DecodeVersion([]byte{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadVersion)
}

func TestVersionRoundTrip(t *testing.T) {
	for _, rev := range []int64{0, 1, 42, 1 << 40} {
		got, err := DecodeVersion(EncodeVersion(rev).Bytes())
		require.NoError(t, err)
		assert.Equal(t, rev, got)
	}
}
