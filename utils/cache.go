// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"shotfolio/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// PortalCacheClient is the dedicated client for portal-token lookups.
	PortalCacheClient *redis.Client
)

// PortalCachePrefix is the prefix used for portal-token cache keys.
const PortalCachePrefix = "portal:"

// PortalCacheTTL is the time-to-live for portal-token cache entries.
const PortalCacheTTL = 15 * time.Minute

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitPortalCache initializes the Redis client for portal-token caching.
func InitPortalCache() {
	PortalCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPortalDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := PortalCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Portal Cache): %v", err)
	}
}

// GetPortalCacheClient returns the Redis client for portal-token caching.
func GetPortalCacheClient() *redis.Client {
	if PortalCacheClient == nil {
		InitPortalCache()
	}
	return PortalCacheClient
}

// InitRedis initializes all Redis clients eagerly at startup.
func InitRedis() {
	InitCache()
	InitPortalCache()
}
