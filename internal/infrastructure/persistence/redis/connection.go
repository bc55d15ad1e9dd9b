// Package redis manages the Redis client used by the record cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

// Connection owns a pooled Redis client.
type Connection struct {
	client *redis.Client
	config *config.RedisConfig
	logger logger.Logger
}

// NewConnection dials Redis and verifies it with a ping.
func NewConnection(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*Connection, error) {
	opts := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
	}
	client := redis.NewClient(opts)

	conn := &Connection{client: client, config: cfg, logger: log}
	if err := conn.Ping(ctx); err != nil {
		_ = client.Close()
		log.Error(ctx, "Failed to establish Redis connection", err, logger.Fields{"address": cfg.Address})
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Info(ctx, "Redis connection established", logger.Fields{
		"address":   cfg.Address,
		"db":        cfg.DB,
		"pool_size": cfg.PoolSize,
	})
	return conn, nil
}

// Client returns the underlying client.
func (c *Connection) Client() *redis.Client {
	return c.client
}

// Ping checks that Redis answers within five seconds.
func (c *Connection) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.client.Ping(pingCtx).Err(); err != nil {
		return errors.Upstream(err)
	}
	return nil
}

// Close closes the client pool.
func (c *Connection) Close() error {
	if err := c.client.Close(); err != nil {
		return err
	}
	c.logger.Info(context.Background(), "Redis connection closed")
	return nil
}
