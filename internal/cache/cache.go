// Package cache decorates a link store with a redis cache-aside layer
// for code lookups: positive entries with a TTL, short-lived negative
// entries for misses, and invalidation on every write that touches a
// cached record.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/storage"
)

// ErrMiss is returned by Client.Get when a key is absent.
var ErrMiss = errors.New("cache miss")

// Client is the small redis surface the cache needs. Defined as an
// interface so tests can use an in-memory fake.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisClient struct {
	rdb *redis.Client
}

// NewRedisClient connects a go-redis client to addr.
func NewRedisClient(addr string) Client {
	return &redisClient{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *redisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (c *redisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *redisClient) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// negSentinel marks a cached miss.
const negSentinel = "\x00missing"

// LinkCache wraps a storage.Store. Lookups by code are served from the
// cache when possible. State flips invalidate the affected entry; the
// click counter in a cached record may lag behind the store until the
// TTL expires. Cache failures degrade to the backend and are never
// surfaced.
type LinkCache struct {
	storage.Store

	client Client
	prefix string
	ttl    time.Duration
	negTTL time.Duration
	logger *zap.Logger
}

func New(backend storage.Store, client Client, logger *zap.Logger) *LinkCache {
	return &LinkCache{
		Store:  backend,
		client: client,
		prefix: "link:",
		ttl:    time.Hour,
		negTTL: time.Minute,
		logger: logger,
	}
}

func (c *LinkCache) key(code string) string {
	return c.prefix + code
}

// invalidate drops cache entries for both resolvable identifiers of a
// record.
func (c *LinkCache) invalidate(ctx context.Context, rec *storage.LinkRecord) {
	keys := []string{c.key(rec.Code)}
	if rec.CustomAlias != "" {
		keys = append(keys, c.key(rec.CustomAlias))
	}
	if err := c.client.Del(ctx, keys...); err != nil {
		c.logger.Debug("cache invalidate failed", zap.Error(err))
	}
}

func (c *LinkCache) FindByCode(ctx context.Context, code string) (*storage.LinkRecord, error) {
	cached, err := c.client.Get(ctx, c.key(code))
	switch {
	case err == nil && cached == negSentinel:
		return nil, storage.ErrNotFound
	case err == nil:
		var rec storage.LinkRecord
		if unmarshalErr := json.Unmarshal([]byte(cached), &rec); unmarshalErr == nil {
			return &rec, nil
		}
		// fall through to the backend on a corrupt entry
	case !errors.Is(err, ErrMiss):
		c.logger.Debug("cache get failed", zap.Error(err))
	}

	rec, err := c.Store.FindByCode(ctx, code)
	if errors.Is(err, storage.ErrNotFound) {
		if setErr := c.client.Set(ctx, c.key(code), negSentinel, c.negTTL); setErr != nil {
			c.logger.Debug("cache set failed", zap.Error(setErr))
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(rec); marshalErr == nil {
		if setErr := c.client.Set(ctx, c.key(code), string(data), c.ttl); setErr != nil {
			c.logger.Debug("cache set failed", zap.Error(setErr))
		}
	}
	return rec, nil
}

func (c *LinkCache) Insert(ctx context.Context, rec storage.LinkRecord) (*storage.LinkRecord, error) {
	stored, err := c.Store.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}

	// a pre-creation lookup may have negative-cached these identifiers
	c.invalidate(ctx, stored)
	return stored, nil
}

func (c *LinkCache) SetActive(ctx context.Context, code string, active bool) error {
	if err := c.Store.SetActive(ctx, code, active); err != nil {
		return err
	}

	if rec, err := c.Store.FindByCode(ctx, code); err == nil {
		c.invalidate(ctx, rec)
	} else if delErr := c.client.Del(ctx, c.key(code)); delErr != nil {
		c.logger.Debug("cache invalidate failed", zap.Error(delErr))
	}
	return nil
}

func (c *LinkCache) DeactivateBatch(ctx context.Context, codes []string) error {
	if err := c.Store.DeactivateBatch(ctx, codes); err != nil {
		return err
	}

	for _, code := range codes {
		if rec, err := c.Store.FindByCode(ctx, code); err == nil {
			c.invalidate(ctx, rec)
		}
	}
	return nil
}
