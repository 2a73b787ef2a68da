// Package cache keeps short-lived delivery markers in Redis so a webhook
// delivered twice is only applied once.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

type Deduplicator interface {
	// Claim reports whether the caller is the first to see key.
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type store interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewRedisClient accepts either a redis:// URL or a bare host:port.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, errors.Wrap(err, "cache: parse redis url")
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "cache: ping redis at %s", opts.Addr)
	}

	return client, nil
}

type RedisDeduplicator struct {
	store  store
	prefix string
	ttl    time.Duration
}

func NewRedisDeduplicator(client store, prefix string, ttl time.Duration) *RedisDeduplicator {
	return &RedisDeduplicator{store: client, prefix: prefix, ttl: ttl}
}

func (d *RedisDeduplicator) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := d.store.SetNX(ctx, d.prefix+key, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, errors.Wrapf(err, "cache: claim %s", key)
	}
	return ok, nil
}

func (d *RedisDeduplicator) Release(ctx context.Context, key string) error {
	if err := d.store.Del(ctx, d.prefix+key).Err(); err != nil {
		return errors.Wrapf(err, "cache: release %s", key)
	}
	return nil
}

// NoopDeduplicator claims every key. Used when Redis is not configured.
type NoopDeduplicator struct{}

func (NoopDeduplicator) Claim(context.Context, string) (bool, error) { return true, nil }

func (NoopDeduplicator) Release(context.Context, string) error { return nil }
