package utils

import (
	"context"
	"log"
	"time"

	"wayfarer/config"

	"github.com/go-redis/redis/v8"
)

// SnapshotCacheClient is the Redis client backing turn snapshots.
var SnapshotCacheClient *redis.Client

// InitSnapshotCache initializes the Redis client for turn snapshots.
func InitSnapshotCache() {
	SnapshotCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSnapshotDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SnapshotCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Snapshot Cache): %v", err)
	}
}

// GetSnapshotCacheClient returns the Redis client for turn snapshots.
func GetSnapshotCacheClient() *redis.Client {
	if SnapshotCacheClient == nil {
		InitSnapshotCache()
	}
	return SnapshotCacheClient
}
