// Package tokencache memoizes token key -> user ID lookups.
package tokencache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache maps token keys to user IDs. A miss returns ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (userID uint, ok bool, err error)
	Set(ctx context.Context, key string, userID uint) error
	Delete(ctx context.Context, key string) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (uint, bool, error) { return 0, false, nil }
func (Nop) Set(context.Context, string, uint) error         { return nil }
func (Nop) Delete(context.Context, string) error            { return nil }

const keyPrefix = "token:"

// Redis stores entries with a TTL so revoked tokens age out.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Open parses a redis:// URL and pings the server.
func Open(ctx context.Context, rawURL string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedis(client, ttl), nil
}

func (r *Redis) Get(ctx context.Context, key string) (uint, bool, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cache entry for token: %w", err)
	}
	return uint(id), true, nil
}

func (r *Redis) Set(ctx context.Context, key string, userID uint) error {
	return r.client.Set(ctx, keyPrefix+key, strconv.FormatUint(uint64(userID), 10), r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
