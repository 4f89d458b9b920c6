package utils

import (
	"context"
	"fmt"
	"time"

	"rideconnect/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// CacheClient backs the route cache. It stays nil when Redis was unreachable at startup.
var CacheClient *redis.Client

func redisOptions(db int) *redis.Options {
	return &redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	}
}

// InitCache connects the cache client on REDIS_CACHE_DB. On failure CacheClient is left nil.
func InitCache() error {
	client := redis.NewClient(redisOptions(config.AppConfig.RedisCacheDB))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis cache at %s: %w", config.AppConfig.RedisAddr, err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the cache client, or nil when caching is unavailable.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// CloseCache releases the cache client if one was opened.
func CloseCache() error {
	if CacheClient == nil {
		return nil
	}
	return CacheClient.Close()
}

// TaskQueueRedisOpt points asynq at the task queue DB on the same Redis server.
func TaskQueueRedisOpt() asynq.RedisClientOpt {
	opts := redisOptions(config.AppConfig.RedisTaskQueueDB)
	return asynq.RedisClientOpt{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
}
