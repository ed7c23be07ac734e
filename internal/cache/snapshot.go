package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/config"
	"go.uber.org/zap"
)

const (
	defaultSnapshotTTL = 30 * time.Second
	keySnapshot        = "kstore:snapshot:%s"
	keySnapshotPattern = "kstore:snapshot:*"
)

// SnapshotCache holds catalog snapshots keyed by calendar day, so a snapshot
// built before midnight is never served after it.
type SnapshotCache interface {
	Get(ctx context.Context, day string) (*domain.Snapshot, bool)
	Set(ctx context.Context, day string, snapshot *domain.Snapshot)
	Invalidate(ctx context.Context)
}

// NewSnapshotCache returns a redis-backed cache when an address is
// configured, otherwise an in-process one.
func NewSnapshotCache(cfg config.Config, log *zap.Logger) SnapshotCache {
	ttl := cfg.SnapshotTTL
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return NewMemorySnapshotCache(ttl)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})
	return NewRedisSnapshotCache(client, ttl, log)
}

type memorySnapshotCache struct {
	items Cache[string, *domain.Snapshot]
	ttl   time.Duration
}

func NewMemorySnapshotCache(ttl time.Duration) SnapshotCache {
	return &memorySnapshotCache{
		items: NewTTLCache[string, *domain.Snapshot](),
		ttl:   ttl,
	}
}

func (c *memorySnapshotCache) Get(_ context.Context, day string) (*domain.Snapshot, bool) {
	return c.items.Get(cacheKey("snapshot", day))
}

func (c *memorySnapshotCache) Set(_ context.Context, day string, snapshot *domain.Snapshot) {
	if snapshot == nil {
		return
	}
	c.items.Set(cacheKey("snapshot", day), snapshot, c.ttl)
}

func (c *memorySnapshotCache) Invalidate(_ context.Context) {
	c.items.Purge()
}

type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration, log *zap.Logger) SnapshotCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &redisSnapshotCache{client: client, ttl: ttl, log: log.Named("snapshot.cache")}
}

func (c *redisSnapshotCache) Get(ctx context.Context, day string) (*domain.Snapshot, bool) {
	raw, err := c.client.Get(ctx, snapshotKey(day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("snapshot cache read failed", zap.Error(err))
		return nil, false
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		c.log.Warn("snapshot cache entry unreadable", zap.Error(err))
		return nil, false
	}
	return &snapshot, true
}

func (c *redisSnapshotCache) Set(ctx context.Context, day string, snapshot *domain.Snapshot) {
	if snapshot == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		c.log.Warn("snapshot encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, snapshotKey(day), raw, c.ttl).Err(); err != nil {
		c.log.Warn("snapshot cache write failed", zap.Error(err))
	}
}

func (c *redisSnapshotCache) Invalidate(ctx context.Context) {
	var keys []string
	iter := c.client.Scan(ctx, 0, keySnapshotPattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("snapshot cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("snapshot cache invalidate failed", zap.Error(err))
	}
}

func snapshotKey(day string) string {
	return fmt.Sprintf(keySnapshot, strings.TrimSpace(day))
}
