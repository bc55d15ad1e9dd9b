package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/internal/domain/repository"
	"github.com/ecnlab/ecn/internal/infrastructure/monitoring"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/logger"
)

// readThrough serves key from the store, falling back to load on a miss or a
// store failure. Concurrent misses for the same key share one load, which runs
// detached from the caller's cancellation so one caller giving up does not fail
// the others. Errors from load are never cached.
type readThrough struct {
	store    Store
	ttl      time.Duration
	resource string
	sf       singleflight.Group
	metrics  *monitoring.Metrics
	logger   logger.Logger
}

func (rt *readThrough) get(ctx context.Context, key string, out interface{}, load func(context.Context) (interface{}, error)) error {
	if b, ok, err := rt.store.Get(ctx, key); err != nil {
		rt.logger.Warn(ctx, "Cache read failed, falling back to store", logger.Fields{"key": key, "error": err.Error()})
	} else if ok {
		if err := json.Unmarshal(b, out); err == nil {
			rt.record(true)
			return nil
		}
		rt.logger.Warn(ctx, "Discarding undecodable cache entry", logger.Fields{"key": key})
	}
	rt.record(false)

	v, err, _ := rt.sf.Do(key, func() (interface{}, error) {
		loadCtx := context.WithoutCancel(ctx)
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := rt.store.Set(loadCtx, key, b, rt.ttl); err != nil {
			rt.logger.Warn(loadCtx, "Cache write failed", logger.Fields{"key": key, "error": err.Error()})
		}
		return b, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), out)
}

func (rt *readThrough) record(hit bool) {
	if rt.metrics != nil {
		rt.metrics.RecordCacheLookup(rt.resource, hit)
	}
}

type earthquakeRepository struct {
	next repository.EarthquakeRepository
	rt   *readThrough
}

// NewEarthquakeRepository caches FindAll and FindByID results of next for ttl.
// metrics may be nil.
func NewEarthquakeRepository(next repository.EarthquakeRepository, store Store, ttl time.Duration, metrics *monitoring.Metrics, log logger.Logger) repository.EarthquakeRepository {
	return &earthquakeRepository{
		next: next,
		rt: &readThrough{
			store:    store,
			ttl:      ttl,
			resource: constants.ResourceEarthquakes,
			metrics:  metrics,
			logger:   log,
		},
	}
}

func (r *earthquakeRepository) FindAll(ctx context.Context) ([]*models.Earthquake, error) {
	var out []*models.Earthquake
	err := r.rt.get(ctx, "earthquakes:all", &out, func(ctx context.Context) (interface{}, error) {
		return r.next.FindAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]*models.Earthquake, 0)
	}
	return out, nil
}

func (r *earthquakeRepository) FindByID(ctx context.Context, id string) (*models.Earthquake, error) {
	var out models.Earthquake
	err := r.rt.get(ctx, "earthquakes:id:"+id, &out, func(ctx context.Context) (interface{}, error) {
		return r.next.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type tsunamiEventRepository struct {
	next repository.TsunamiEventRepository
	rt   *readThrough
}

// NewTsunamiEventRepository caches FindRecent results of next for ttl.
// metrics may be nil.
func NewTsunamiEventRepository(next repository.TsunamiEventRepository, store Store, ttl time.Duration, metrics *monitoring.Metrics, log logger.Logger) repository.TsunamiEventRepository {
	return &tsunamiEventRepository{
		next: next,
		rt: &readThrough{
			store:    store,
			ttl:      ttl,
			resource: constants.ResourceTsunamiEvents,
			metrics:  metrics,
			logger:   log,
		},
	}
}

func (r *tsunamiEventRepository) FindRecent(ctx context.Context, limit int) ([]*models.TsunamiEvent, error) {
	var out []*models.TsunamiEvent
	err := r.rt.get(ctx, "tsunamiEvents:recent:"+strconv.Itoa(limit), &out, func(ctx context.Context) (interface{}, error) {
		return r.next.FindRecent(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]*models.TsunamiEvent, 0)
	}
	return out, nil
}
