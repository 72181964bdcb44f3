package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skybook/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache memoizes serialized flight list responses. Every entry is stored under the
// current generation; InvalidateFlights bumps the generation so older entries are never read
// again and expire on their own.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

// GetFlights looks query up under the current generation and returns the generation-qualified
// key it used; a miss returns nil data. Pages written back under that key after an
// invalidation are never read.
func (c *RedisCache) GetFlights(ctx context.Context, query string) ([]byte, string, error) {
	key, err := c.flightsKey(ctx, query)
	if err != nil {
		return nil, "", err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, key, nil
		}
		return nil, "", err
	}
	return data, key, nil
}

// SetFlights stores payload under a key returned by GetFlights.
func (c *RedisCache) SetFlights(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Incr(ctx, flightsGenerationKey).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

const flightsGenerationKey = "cache:flights:generation"

func (c *RedisCache) flightsKey(ctx context.Context, query string) (string, error) {
	gen, err := c.client.Get(ctx, flightsGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("cache:flights:%d:%s", gen, query), nil
}
