package database

import (
	"context"

	"awards-portal/internal/common/config"
)

type closingPinger interface {
	Ping(ctx context.Context) error
	Close() error
}

// pingOrClose releases c when it cannot reach its server, so callers that
// retry a connection do not leak a pool per attempt.
func pingOrClose(ctx context.Context, c closingPinger) error {
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return err
	}
	return nil
}

// ConnectPostgres opens a pool and verifies it answers.
func ConnectPostgres(ctx context.Context, cfg config.PostgresConfig) (*PostgresClient, error) {
	c, err := NewPostgres(cfg)
	if err != nil {
		return nil, err
	}
	if err := pingOrClose(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ConnectRedis opens a client and verifies it answers.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*RedisClient, error) {
	c, err := NewRedis(cfg)
	if err != nil {
		return nil, err
	}
	if err := pingOrClose(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
