// Package bootstrap assembles the infrastructure shared by the service binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/internal/domain/repository"
	"github.com/ecnlab/ecn/internal/infrastructure/cache"
	"github.com/ecnlab/ecn/internal/infrastructure/monitoring"
	"github.com/ecnlab/ecn/internal/infrastructure/persistence/mongo"
	"github.com/ecnlab/ecn/internal/infrastructure/persistence/postgres"
	"github.com/ecnlab/ecn/internal/infrastructure/persistence/redis"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/logger"
)

// Records is the wired record store: repositories, possibly cache-decorated,
// and the dependencies readiness should ping.
type Records struct {
	Earthquakes   repository.EarthquakeRepository
	TsunamiEvents repository.TsunamiEventRepository
	Checks        map[string]repository.Pinger

	closers []func(context.Context) error
}

// OpenRecords connects the store selected by cfg.Store.Driver and wraps it in
// the cache selected by cfg.Cache.Driver.
func OpenRecords(ctx context.Context, cfg *config.Config, metrics *monitoring.Metrics, log logger.Logger) (*Records, error) {
	r := &Records{Checks: make(map[string]repository.Pinger)}

	switch cfg.Store.Driver {
	case constants.StoreDriverMongoDB:
		conn, err := mongo.NewConnection(ctx, &cfg.Store, log)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, conn.Close)
		r.Checks["store"] = conn
		r.Earthquakes = mongo.NewEarthquakeRepository(conn.Database())
		r.TsunamiEvents = mongo.NewTsunamiEventRepository(conn.Database())

	case constants.StoreDriverPostgres, constants.StoreDriverSQLite:
		conn, err := postgres.NewDBConnection(ctx, &cfg.Store, log)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, func(context.Context) error { conn.Close(); return nil })
		if cfg.Store.Driver == constants.StoreDriverSQLite {
			if err := conn.Migrate(ctx); err != nil {
				r.Close(ctx)
				return nil, err
			}
		}
		r.Checks["store"] = conn
		r.Earthquakes = postgres.NewEarthquakeRepository(conn.DB())
		r.TsunamiEvents = postgres.NewTsunamiEventRepository(conn.DB())

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	var store cache.Store
	switch cfg.Cache.Driver {
	case constants.CacheDriverMemory:
		store = cache.NewMemoryStore(cfg.Cache.TTL)
	case constants.CacheDriverRedis:
		conn, err := redis.NewConnection(ctx, &cfg.Redis, log)
		if err != nil {
			r.Close(ctx)
			return nil, err
		}
		r.closers = append(r.closers, func(context.Context) error { return conn.Close() })
		r.Checks["cache"] = conn
		store = cache.NewRedisStore(conn.Client(), cfg.Redis.KeyPrefix)
	}
	if store != nil {
		r.Earthquakes = cache.NewEarthquakeRepository(r.Earthquakes, store, cfg.Cache.TTL, metrics, log)
		r.TsunamiEvents = cache.NewTsunamiEventRepository(r.TsunamiEvents, store, cfg.Cache.TTL, metrics, log)
	}

	log.Info(ctx, "Record store ready", logger.Fields{
		"store": cfg.Store.Driver,
		"cache": cfg.Cache.Driver,
	})
	return r, nil
}

// Close releases connections in reverse order of opening.
func (r *Records) Close(ctx context.Context) {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i](ctx)
	}
	r.closers = nil
}
