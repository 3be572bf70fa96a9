package lib

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// InvalidateCache drops cached values after a catalog write. A failed
// invalidation is logged and otherwise ignored; the TTL bounds staleness.
func InvalidateCache(keys ...string) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), keys...).Err(); err != nil {
		log.Printf("[redis] Error invalidating keys %v: %s\n", keys, err.Error())
	}
}
