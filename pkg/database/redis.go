package database

import (
	"context"
	"fmt"
	"time"

	"github.com/diagnosis/staycheck/pkg/config"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens a client for REDIS_URL and pings it.
func ConnectRedis(ctx context.Context, redisCfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if redisCfg.Password != "" {
		opts.Password = redisCfg.Password
	}
	if redisCfg.DB != 0 {
		opts.DB = redisCfg.DB
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
