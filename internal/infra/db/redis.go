package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spendlens/backend/config"
)

// NewRedisClient creates a Redis client and verifies connectivity. Returns
// nil when no address is configured; callers treat a nil client as "use the
// in-process fallback".
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, falling back to in-process rate limiting",
			"addr", cfg.Addr,
			"error", err,
		)
		_ = client.Close()
		return nil
	}

	slog.Info("Redis connection established", "addr", cfg.Addr)
	return client
}
