package chat

import (
	"context"

	myredis "chitchat_server/internal/dao/redis"
)

// RedisPresence tracks online users in the shared redis set, so presence is
// visible across server instances in kafka mode.
type RedisPresence struct{}

func (RedisPresence) MarkOnline(userId string) error {
	return myredis.MarkOnline(context.Background(), userId)
}

func (RedisPresence) MarkOffline(userId string) error {
	return myredis.MarkOffline(context.Background(), userId)
}

// NopPresence is used in tests and single-node setups without redis.
type NopPresence struct{}

func (NopPresence) MarkOnline(string) error  { return nil }
func (NopPresence) MarkOffline(string) error { return nil }
