package cache

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTTLCacheExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTTLCache[string, int](func() time.Time { return now })

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)

	v, ok = c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	c.Purge()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestMemorySnapshotCacheKeyedByDay(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySnapshotCache(time.Minute)

	c.Set(ctx, "2024-01-01", &domain.Snapshot{Generation: 3, Today: "2024-01-01"})
	c.Set(ctx, "2024-01-02", nil)

	got, ok := c.Get(ctx, "2024-01-01")
	require.True(t, ok)
	assert.Equal(t, uint64(3), got.Generation)

	_, ok = c.Get(ctx, "2024-01-02")
	assert.False(t, ok)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx, "2024-01-01")
	assert.False(t, ok)
}

func TestNewSnapshotCacheDefaultsToMemory(t *testing.T) {
	c := NewSnapshotCache(config.Config{}, zap.NewNop())
	_, ok := c.(*memorySnapshotCache)
	assert.True(t, ok)
	assert.Equal(t, "kstore:snapshot:2024-01-01", snapshotKey(" 2024-01-01 "))
	assert.Equal(t, "snapshot:2024-01-01", cacheKey("snapshot", " 2024-01-01"))
}
