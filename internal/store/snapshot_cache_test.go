package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kimoncrm-survey/internal/domain"
	"kimoncrm-survey/internal/store"
)

// fakeKV 内存 KV（测试替身，不依赖 Redis）
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func TestSnapshotCache_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	cache := store.NewSnapshotCache(kv, time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, "s1")
	require.ErrorIs(t, err, store.ErrMiss)

	snapshot := &domain.SurveySnapshot{Buildings: []*domain.Building{{BuildingID: "B1"}}}
	require.NoError(t, cache.Put(ctx, "s1", snapshot))

	got, err := cache.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, snapshot, got)

	require.NoError(t, cache.Invalidate(ctx, "s1"))
	_, err = cache.Get(ctx, "s1")
	require.ErrorIs(t, err, store.ErrMiss)
}

func TestSnapshotCache_CorruptEntryIsMiss(t *testing.T) {
	kv := newFakeKV()
	cache := store.NewSnapshotCache(kv, time.Minute)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "proposal:survey:s1:snapshot", "{not json", 0))
	_, err := cache.Get(ctx, "s1")
	require.ErrorIs(t, err, store.ErrMiss)
}
