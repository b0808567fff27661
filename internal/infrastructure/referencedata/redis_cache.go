package referencedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
)

// DefaultSnapshotKey is the Redis key holding the serialized snapshot.
const DefaultSnapshotKey = "decision:reference-snapshot:v1"

// SnapshotCache stores serialized snapshots between restarts and replicas.
type SnapshotCache interface {
	// Get returns nil without error on a cache miss.
	Get(ctx context.Context) (*model.ReferenceSnapshot, error)
	Put(ctx context.Context, snapshot *model.ReferenceSnapshot) error
}

// NewRedisClient creates a Redis client with the service's timeouts.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// RedisSnapshotCache keeps the JSON-encoded snapshot under a single key.
type RedisSnapshotCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedisSnapshotCache creates a cache. A zero ttl keeps the key forever.
func NewRedisSnapshotCache(client redis.Cmdable, key string, ttl time.Duration) *RedisSnapshotCache {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &RedisSnapshotCache{client: client, key: key, ttl: ttl}
}

// Get loads the cached snapshot.
func (c *RedisSnapshotCache) Get(ctx context.Context) (*model.ReferenceSnapshot, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referencedata: redis get %s: %w", c.key, err)
	}

	var snapshot model.ReferenceSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("referencedata: decode cached snapshot: %w", err)
	}
	return &snapshot, nil
}

// Put stores the snapshot with the configured TTL.
func (c *RedisSnapshotCache) Put(ctx context.Context, snapshot *model.ReferenceSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("referencedata: encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("referencedata: redis set %s: %w", c.key, err)
	}
	return nil
}
