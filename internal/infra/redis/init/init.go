package infra_redis_init

import (
	"fmt"
	"net"

	"github.com/go-redis/redis"
	"github.com/krishkpatil/getflix/internal/config"
)

// Connect dials the cache and pings it once. The client is closed on failure.
func Connect(cfg config.RedisCache) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        net.JoinHostPort(cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.DialTimeout,
		MaxRetries:  1,
	})

	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}
	return client, nil
}
