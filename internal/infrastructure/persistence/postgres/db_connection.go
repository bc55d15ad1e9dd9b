// Package postgres implements the record repositories on a relational store
// through gorm. PostgreSQL runs on a pgx connection pool; SQLite is supported
// for local development and tests.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

// DBConnection manages the gorm handle and the pool underneath it.
type DBConnection struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	pool   *pgxpool.Pool
	driver constants.StoreDriver
	logger logger.Logger
}

// NewDBConnection opens the store selected by cfg.Driver and performs an
// initial health check.
func NewDBConnection(ctx context.Context, cfg *config.StoreConfig, log logger.Logger) (*DBConnection, error) {
	log.Info(ctx, "Initializing SQL record store", logger.Fields{
		"driver":    cfg.Driver,
		"max_conns": cfg.MaxConns,
		"min_conns": cfg.MinConns,
	})

	var (
		conn *DBConnection
		err  error
	)
	switch cfg.Driver {
	case constants.StoreDriverPostgres:
		conn, err = openPostgres(ctx, cfg)
	case constants.StoreDriverSQLite:
		conn, err = openSQLite(cfg)
	default:
		return nil, fmt.Errorf("store driver %q is not a SQL driver", cfg.Driver)
	}
	if err != nil {
		log.Error(ctx, "Failed to open SQL record store", err)
		return nil, err
	}
	conn.driver = cfg.Driver
	conn.logger = log

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	log.Info(ctx, "SQL record store initialized", logger.Fields{"driver": cfg.Driver})
	return conn, nil
}

func openPostgres(ctx context.Context, cfg *config.StoreConfig) (*DBConnection, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("parse postgres uri: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, errors.Upstream(fmt.Errorf("create postgres pool: %w", err))
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}
	return &DBConnection{db: db, sqlDB: sqlDB, pool: pool}, nil
}

func openSQLite(cfg *config.StoreConfig) (*DBConnection, error) {
	db, err := gorm.Open(sqlite.Open(cfg.URI), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.URI, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// A single connection keeps an in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	return &DBConnection{db: db, sqlDB: sqlDB}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
}

// DB returns the gorm handle the repositories query through.
func (c *DBConnection) DB() *gorm.DB {
	return c.db
}

// Migrate creates or updates the record tables. It is used for SQLite stores,
// which start empty; PostgreSQL schemas are provisioned out of band.
func (c *DBConnection) Migrate(ctx context.Context) error {
	if err := c.db.WithContext(ctx).AutoMigrate(&earthquakeRow{}, &tsunamiEventRow{}); err != nil {
		return fmt.Errorf("migrate record tables: %w", err)
	}
	return nil
}

// Ping verifies the store answers within five seconds.
func (c *DBConnection) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := c.sqlDB.PingContext(pingCtx); err != nil {
		c.logger.Warn(ctx, "SQL store ping failed", logger.Fields{"error": err.Error()})
		return errors.Upstream(err)
	}
	if latency := time.Since(start); latency > 100*time.Millisecond {
		c.logger.Warn(ctx, "High store latency detected", logger.Fields{"latency_ms": latency.Milliseconds()})
	}
	return nil
}

// Close releases the pool.
func (c *DBConnection) Close() {
	_ = c.sqlDB.Close()
	if c.pool != nil {
		c.pool.Close()
	}
	if c.logger != nil {
		c.logger.Info(context.Background(), "SQL record store closed", logger.Fields{"driver": c.driver})
	}
}
