// Package cache wraps Redis for response caching. Fighter pages change
// rarely, so the REST layer serves repeated lookups from here instead of
// re-running the join-heavy queries.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL for cached lookup responses.
const DefaultTTL = 10 * time.Minute

// RedisCache handles caching and fast state storage.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Set stores a key-value pair with TTL.
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key. Returns redis.Nil error on a miss.
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, key).Result()
}

// Delete removes keys.
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// FighterStatsKey is the cache key for a fighter's profile-and-stats
// response.
func FighterStatsKey(name string) string {
	return "fighter:stats:" + name
}

// FighterHistoryKey is the cache key for a fighter's bout history response.
func FighterHistoryKey(name string) string {
	return "fighter:history:" + name
}

// FighterRecordKey is the cache key for a fighter's scraped career record.
func FighterRecordKey(name string) string {
	return "fighter:record:" + name
}

// InvalidateFighter drops the cached responses for a fighter, used after
// an import touches their rows.
func (rc *RedisCache) InvalidateFighter(ctx context.Context, name string) error {
	return rc.Delete(ctx, FighterStatsKey(name), FighterHistoryKey(name), FighterRecordKey(name))
}
