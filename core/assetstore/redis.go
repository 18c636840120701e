package assetstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps documents as string values. Keys are indexed in a set
// so List does not need to scan the keyspace.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects to the server described by cfg.
func NewRedisBackend(cfg RedisConfig) *RedisBackend {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisBackendFromClient(rdb, cfg.Prefix)
}

// NewRedisBackendFromClient wraps an existing client.
func NewRedisBackendFromClient(client *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "controllers:"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) key(k string) string { return b.prefix + "doc:" + k }

func (b *RedisBackend) indexKey() string { return b.prefix + "index" }

func (b *RedisBackend) List(ctx context.Context) ([]string, error) {
	keys, err := b.client.SMembers(ctx, b.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list controllers: %w", err)
	}
	return keys, nil
}

func (b *RedisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return data, nil
}

func (b *RedisBackend) Write(ctx context.Context, key string, data []byte) error {
	pipe := b.client.TxPipeline()
	pipe.Set(ctx, b.key(key), data, 0)
	pipe.SAdd(ctx, b.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
