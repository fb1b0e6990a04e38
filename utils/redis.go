package utils

import (
	"context"
	"log"
	"time"

	"github.com/eventful-api/eventful-backend/config"
	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client used for response caching.
func InitRedis(cfg *config.Config) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}

	log.Println("✅ Connected to Redis")
	return nil
}

// CacheGet returns the cached value for key, or "" on a miss.
// Cache failures are never fatal; callers fall through to the database.
func CacheGet(ctx context.Context, key string) string {
	if redisClient == nil {
		return ""
	}
	val, err := redisClient.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

func CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if redisClient == nil {
		return
	}
	if err := redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("⚠️ Redis SET failed for %s: %v", key, err)
	}
}

func CacheDelete(ctx context.Context, keys ...string) {
	if redisClient == nil {
		return
	}
	if err := redisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ Redis DEL failed: %v", err)
	}
}
