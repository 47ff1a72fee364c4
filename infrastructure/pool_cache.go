package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gachabot/domain/entities"
	"gachabot/events"
	"gachabot/infrastructure/observability"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// PoolCache keeps each guild's item pool in Redis. Entries are dropped when a
// PoolChangedEvent is flushed, which happens only after the change committed.
type PoolCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPoolCache creates a pool cache on an existing Redis client
func NewPoolCache(client *redis.Client, ttl time.Duration) *PoolCache {
	return &PoolCache{client: client, ttl: ttl}
}

// ConnectPoolCache parses a redis:// URL, pings the server and returns the cache
func ConnectPoolCache(ctx context.Context, redisURL string, ttl time.Duration) (*PoolCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewPoolCache(client, ttl), nil
}

// Each guild has a generation counter. Pools are stored under the generation
// they were read at, and invalidation bumps the counter, so a pool loaded
// before a change can only land under a key nobody reads anymore.
func generationKey(guildID int64) string {
	return fmt.Sprintf("gacha:pool:%d:gen", guildID)
}

func poolKey(guildID, generation int64) string {
	return fmt.Sprintf("gacha:pool:%d:v%d", guildID, generation)
}

// Generation returns the guild's current pool generation, or -1 when Redis
// is unavailable
func (c *PoolCache) Generation(ctx context.Context, guildID int64) int64 {
	gen, err := c.client.Get(ctx, generationKey(guildID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0
	}
	if err != nil {
		log.WithFields(log.Fields{
			"guildID": guildID,
			"error":   err,
		}).Warn("Pool cache read failed, falling back to database")
		return -1
	}
	return gen
}

// Get returns the cached pool for the current generation. ok is false on a
// miss or when Redis is unavailable. The returned generation is what a loader
// must pass to Set; it is -1 when nothing should be stored.
func (c *PoolCache) Get(ctx context.Context, guildID int64) (pool []*entities.Item, generation int64, ok bool) {
	generation = c.Generation(ctx, guildID)
	if generation < 0 {
		return nil, -1, false
	}

	data, err := c.client.Get(ctx, poolKey(guildID, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.GetMetrics().RecordCacheLookup(observability.CacheMiss)
		return nil, generation, false
	}
	if err != nil {
		log.WithFields(log.Fields{
			"guildID": guildID,
			"error":   err,
		}).Warn("Pool cache read failed, falling back to database")
		return nil, -1, false
	}

	if err := json.Unmarshal(data, &pool); err != nil {
		log.WithError(err).Warn("Discarding undecodable pool cache entry")
		c.Invalidate(ctx, guildID)
		return nil, -1, false
	}
	observability.GetMetrics().RecordCacheLookup(observability.CacheHit)
	return pool, generation, true
}

// Set stores a pool read at generation. A pool whose generation was bumped in
// the meantime is written under a stale key and never served. Failures are
// logged only.
func (c *PoolCache) Set(ctx context.Context, guildID, generation int64, pool []*entities.Item) {
	if generation < 0 {
		return
	}
	data, err := json.Marshal(pool)
	if err != nil {
		log.WithError(err).Warn("Failed to encode pool for cache")
		return
	}
	if err := c.client.Set(ctx, poolKey(guildID, generation), data, c.ttl).Err(); err != nil {
		log.WithFields(log.Fields{
			"guildID": guildID,
			"error":   err,
		}).Warn("Pool cache write failed")
	}
}

// Invalidate bumps the guild's generation so every stored pool goes stale.
// Old entries expire with the TTL.
func (c *PoolCache) Invalidate(ctx context.Context, guildID int64) {
	if err := c.client.Incr(ctx, generationKey(guildID)).Err(); err != nil {
		log.WithFields(log.Fields{
			"guildID": guildID,
			"error":   err,
		}).Warn("Pool cache invalidation failed")
	}
}

// HandlePoolChanged is a local event handler that invalidates the guild's entry
func (c *PoolCache) HandlePoolChanged(ctx context.Context, event events.Event) error {
	changed, ok := event.(events.PoolChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	c.Invalidate(ctx, changed.GuildID)
	return nil
}

// Ping checks that Redis answers
func (c *PoolCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *PoolCache) Close() error {
	return c.client.Close()
}
