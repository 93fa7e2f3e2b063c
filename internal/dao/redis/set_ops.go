package redis

import (
	"context"

	"chitchat_server/pkg/errorx"
)

// SAdd adds members to a set.
func SAdd(ctx context.Context, key string, members ...interface{}) error {
	if len(members) == 0 {
		return nil
	}
	if err := redisClient.SAdd(ctx, key, members...).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis sadd %s", key)
	}
	return nil
}

// SRem removes members from a set.
func SRem(ctx context.Context, key string, members ...interface{}) error {
	if len(members) == 0 {
		return nil
	}
	if err := redisClient.SRem(ctx, key, members...).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis srem %s", key)
	}
	return nil
}

// SMembers returns all members of a set; an absent key yields an empty slice.
func SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := redisClient.SMembers(ctx, key).Result()
	if err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeCacheError, "redis smembers %s", key)
	}
	return members, nil
}

// SIsMember reports set membership.
func SIsMember(ctx context.Context, key string, member interface{}) (bool, error) {
	ok, err := redisClient.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, errorx.Wrapf(err, errorx.CodeCacheError, "redis sismember %s", key)
	}
	return ok, nil
}
