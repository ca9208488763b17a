package redis_client

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const connectTimeout = 15 * time.Second

// Connect returns a pinged client, or nil when no address is configured
func Connect(ctx context.Context, redisConfig config.RedisConfig) (*redis.Client, error) {
	if redisConfig.Address == "" {
		log.Info().Msg("Skipping Redis setup")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Address,
		Password: redisConfig.Password,
		DB:       redisConfig.Database,
	})

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = connectTimeout

	err := backoff.Retry(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(retryBackoff, ctx))
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", redisConfig.Address, err)
	}

	log.Info().Str("address", redisConfig.Address).Msg("Connected to Redis")

	return client, nil
}
