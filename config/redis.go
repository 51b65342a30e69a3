package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil without error when REDIS_ADDR is not set.
func ConnectRedis(cfg Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		log.Println("ℹ️  REDIS_ADDR not set; using in-process cache")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}

	log.Println("✅ Redis connected:", res)
	return rdb, nil
}
