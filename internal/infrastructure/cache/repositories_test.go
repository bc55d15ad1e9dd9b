package cache

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/internal/infrastructure/monitoring"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

type MockEarthquakeRepository struct {
	mock.Mock
}

func (m *MockEarthquakeRepository) FindAll(ctx context.Context) ([]*models.Earthquake, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Earthquake), args.Error(1)
}

func (m *MockEarthquakeRepository) FindByID(ctx context.Context, id string) (*models.Earthquake, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Earthquake), args.Error(1)
}

type MockTsunamiEventRepository struct {
	mock.Mock
}

func (m *MockTsunamiEventRepository) FindRecent(ctx context.Context, limit int) ([]*models.TsunamiEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TsunamiEvent), args.Error(1)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, stderrors.New("cache down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return stderrors.New("cache down")
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "ecn:"), mr
}

func TestStores(t *testing.T) {
	redisStore, mr := newRedisStore(t)
	stores := map[string]Store{
		"memory": NewMemoryStore(time.Minute),
		"redis":  redisStore,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, ok, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
			v, ok, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte("v"), v)
		})
	}
	assert.True(t, mr.Exists("ecn:k"))
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEarthquakeRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	next := new(MockEarthquakeRepository)
	origin := time.Date(2004, 12, 26, 0, 58, 53, 0, time.UTC)
	mw := 9.1
	stored := []*models.Earthquake{{
		ID:         "a1",
		Name:       "Sumatra",
		OriginTime: &origin,
		Mw:         &mw,
		Epicenter:  &orb.Point{95.98, 3.3},
	}}
	next.On("FindAll", mock.Anything).Return(stored, nil).Once()

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	repo := NewEarthquakeRepository(next, NewMemoryStore(time.Minute), time.Minute, metrics, logger.NewNoopLogger())

	first, err := repo.FindAll(ctx)
	require.NoError(t, err)
	second, err := repo.FindAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, stored, first)
	assert.Equal(t, first, second)
	next.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("earthquakes", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("earthquakes", "miss")))
}

func TestEarthquakeRepository_EmptyListStaysNonNil(t *testing.T) {
	next := new(MockEarthquakeRepository)
	next.On("FindAll", mock.Anything).Return([]*models.Earthquake{}, nil).Once()
	repo := NewEarthquakeRepository(next, NewMemoryStore(time.Minute), time.Minute, nil, logger.NewNoopLogger())

	for i := 0; i < 2; i++ {
		all, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	}
}

func TestEarthquakeRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := new(MockEarthquakeRepository)
	next.On("FindByID", mock.Anything, "gone").Return(nil, errors.NotFound("earthquake", "gone")).Twice()
	repo := NewEarthquakeRepository(next, NewMemoryStore(time.Minute), time.Minute, nil, logger.NewNoopLogger())

	for i := 0; i < 2; i++ {
		eq, err := repo.FindByID(ctx, "gone")
		assert.Nil(t, eq)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	}
	next.AssertExpectations(t)
}

func TestEarthquakeRepository_CacheFailureFallsBack(t *testing.T) {
	next := new(MockEarthquakeRepository)
	next.On("FindByID", mock.Anything, "a1").Return(&models.Earthquake{ID: "a1", Name: "Nias"}, nil).Twice()
	repo := NewEarthquakeRepository(next, failingStore{}, time.Minute, nil, logger.NewNoopLogger())

	for i := 0; i < 2; i++ {
		eq, err := repo.FindByID(context.Background(), "a1")
		require.NoError(t, err)
		assert.Equal(t, "Nias", eq.Name)
	}
	next.AssertExpectations(t)
}

func TestEarthquakeRepository_ConcurrentMissesShareLoad(t *testing.T) {
	next := new(MockEarthquakeRepository)
	release := make(chan struct{})
	next.On("FindByID", mock.Anything, "a1").
		Run(func(mock.Arguments) { <-release }).
		Return(&models.Earthquake{ID: "a1", Name: "Nias"}, nil).Once()
	repo := NewEarthquakeRepository(next, NewMemoryStore(time.Minute), time.Minute, nil, logger.NewNoopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eq, err := repo.FindByID(context.Background(), "a1")
			assert.NoError(t, err)
			assert.Equal(t, "Nias", eq.Name)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	next.AssertExpectations(t)
}

func TestEarthquakeRepository_LoadOutlivesCanceledCaller(t *testing.T) {
	store, mr := newRedisStore(t)
	next := new(MockEarthquakeRepository)
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	next.On("FindByID", live, "a1").Return(&models.Earthquake{ID: "a1", Name: "Nias"}, nil).Once()
	repo := NewEarthquakeRepository(next, store, time.Minute, nil, logger.NewNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eq, err := repo.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Nias", eq.Name)
	assert.True(t, mr.Exists("ecn:earthquakes:id:a1"))

	eq, err = repo.FindByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Nias", eq.Name)
	next.AssertExpectations(t)
}

func TestTsunamiEventRepository_KeyedByLimit(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	year := 2011
	next := new(MockTsunamiEventRepository)
	next.On("FindRecent", mock.Anything, 100).Return([]*models.TsunamiEvent{{ID: 5, Year: &year}}, nil).Once()
	next.On("FindRecent", mock.Anything, 2).Return([]*models.TsunamiEvent{}, nil).Once()
	repo := NewTsunamiEventRepository(next, store, time.Minute, nil, logger.NewNoopLogger())

	events, err := repo.FindRecent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, events, 1)
	events, err = repo.FindRecent(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 2011, *events[0].Year)

	events, err = repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.True(t, mr.Exists("ecn:tsunamiEvents:recent:100"))
	next.AssertExpectations(t)
}
