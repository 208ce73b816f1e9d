package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/config"
)

// ErrCacheMiss indicates the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Cache is a thin JSON cache over Redis for the public catalog reads.
// Treated as strictly optional: every error degrades to a miss and the
// caller falls through to the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// New creates a catalog cache. Returns an error if Redis is unreachable so
// the caller can decide whether to run without it.
func New(cfg *config.RedisConfig, logger *logrus.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{
		client: client,
		ttl:    cfg.CatalogTTL,
		logger: logger,
	}, nil
}

// Get unmarshals the cached value for key into dest
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
		return ErrCacheMiss
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache entry corrupt, discarding")
		c.client.Del(ctx, key)
		return ErrCacheMiss
	}

	return nil
}

// Set stores value under key with the configured TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache marshal failed")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

// Invalidate removes keys after a catalog write
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WithError(err).Warn("Cache invalidation failed")
	}
}

// Close releases the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
