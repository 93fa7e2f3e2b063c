package redis

import (
	"context"
	"errors"
	"time"

	"chitchat_server/pkg/errorx"

	"github.com/redis/go-redis/v9"
)

// SetKeyEx stores a string value with an expiry.
func SetKeyEx(ctx context.Context, key, value string, timeout time.Duration) error {
	if err := redisClient.Set(ctx, key, value, timeout).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set key %s", key)
	}
	return nil
}

// GetKey returns the value for key, or "" (no error) when the key is absent.
func GetKey(ctx context.Context, key string) (string, error) {
	value, err := redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "redis get key %s", key)
	}
	return value, nil
}

// DelKeys removes the given keys.
func DelKeys(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := redisClient.Del(ctx, keys...).Err(); err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "redis del keys")
	}
	return nil
}
