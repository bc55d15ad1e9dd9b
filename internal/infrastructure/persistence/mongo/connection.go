// Package mongo implements the record repositories on MongoDB, the store the
// ingestion process writes to.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

// Collection names written by the ingestion process.
const (
	EarthquakeCollection   = "earthquake"
	TsunamiEventCollection = "tsunamiEvent"
)

// Connection manages the MongoDB client pool.
type Connection struct {
	client *mongo.Client
	db     *mongo.Database
	logger logger.Logger
}

// NewConnection connects to cfg.URI and verifies the server answers a ping.
func NewConnection(ctx context.Context, cfg *config.StoreConfig, log logger.Logger) (*Connection, error) {
	log.Info(ctx, "Connecting to MongoDB", logger.Fields{
		"database":  cfg.Database,
		"max_conns": cfg.MaxConns,
	})

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}
	if cfg.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		opts.SetMinPoolSize(uint64(cfg.MinConns))
	}
	if cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	conn := &Connection{client: client, db: client.Database(cfg.Database), logger: log}
	if err := conn.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info(ctx, "MongoDB connection established", logger.Fields{"database": cfg.Database})
	return conn, nil
}

// Database returns the handle the repositories read from.
func (c *Connection) Database() *mongo.Database {
	return c.db
}

// Ping checks the primary is reachable.
func (c *Connection) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.client.Ping(pingCtx, readpref.Primary()); err != nil {
		c.logger.Warn(ctx, "MongoDB ping failed", logger.Fields{"error": err.Error()})
		return errors.Upstream(err)
	}
	return nil
}

// Close disconnects the client pool.
func (c *Connection) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	c.logger.Info(ctx, "MongoDB connection closed")
	return nil
}
