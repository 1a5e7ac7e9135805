package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/funnfood/storefront/internal/core/domain"
)

const (
	connectTimeout = 5 * time.Second
	// entryTTL matches the 7-day cookie expiry of the expiring deployment
	// profile. Every write renews it.
	entryTTL = 7 * 24 * time.Hour

	keyPrefix = "storefront:"
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// ConnectRedis initialises a Redis client and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Redis is the expiring Storage: entries live entryTTL from their last write
// and then vanish, like the cookie-backed deployment of the original client.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, entryTTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
