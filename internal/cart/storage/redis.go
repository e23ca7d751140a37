package storage

import (
	"context"
	"errors"
	"time"
)

// redisKV is the subset of pkg/redis.Client used for cart payloads.
type redisKV interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(storageKey string) string
	Ping(ctx context.Context) error
}

// Redis stores each cart payload as a string value with an optional TTL.
type Redis struct {
	client redisKV
	ttl    time.Duration
}

// NewRedis wraps a redis client. A zero ttl keeps payloads forever.
func NewRedis(client redisKV, ttl time.Duration) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Load(ctx context.Context, key string) (string, bool, error) {
	return r.client.Lookup(ctx, r.client.CartKey(key))
}

func (r *Redis) Save(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.CartKey(key), value, r.ttl)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
