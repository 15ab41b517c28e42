package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/aulalink/activity-service/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the content cache backend. The caller treats a
// failure here as cache-disabled, not fatal: the service grades from the
// database alone when Redis is down.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DialTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
