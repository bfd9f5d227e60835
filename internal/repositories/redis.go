package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lmoralesdev/storefront-gateway/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis",
		slog.String("host", cfg.RedisConnect.Host),
		slog.String("port", cfg.RedisConnect.Port),
		slog.Int("db", cfg.RedisConnect.DB),
	)

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}
