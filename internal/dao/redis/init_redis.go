// Package redis wraps the cache client: connection setup, basic key/set
// operations and the read-through profile cache.
package redis

import (
	"context"
	"strconv"

	"chitchat_server/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var redisClient *redis.Client

// Init connects the package-level client using config values. A failed ping
// is logged but not fatal: the cache is an optimization, every read path
// falls back to the database.
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,

		PoolSize:     50,
		MinIdleConns: 10,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		zap.L().Warn("redis ping failed, cache disabled until it recovers", zap.Error(err))
	}
}

// InitWithClient injects a prepared client; used by tests with miniredis.
func InitWithClient(c *redis.Client) {
	redisClient = c
}

// Close releases the client.
func Close() {
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
