package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"jobassist/internal/config"
)

// NewRedis builds a client from a redis:// URL when one is set, otherwise from
// Addr/Password/DB, and pings it.
func NewRedis(ctx context.Context, c config.RedisConfig) (*redis.Client, error) {
	opt, err := redisOptions(c)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func redisOptions(c config.RedisConfig) (*redis.Options, error) {
	if strings.HasPrefix(c.URL, "redis://") || strings.HasPrefix(c.URL, "rediss://") {
		opt, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opt, nil
	}
	if c.Addr == "" {
		return nil, fmt.Errorf("invalid redis config: REDIS_ADDR or REDIS_URL is required")
	}
	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}, nil
}
