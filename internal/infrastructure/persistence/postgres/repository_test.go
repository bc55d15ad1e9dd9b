package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

func newTestConnection(t *testing.T) *DBConnection {
	t.Helper()
	conn, err := NewDBConnection(context.Background(), &config.StoreConfig{
		Driver: constants.StoreDriverSQLite,
		URI:    ":memory:",
	}, logger.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(conn.Close)
	require.NoError(t, conn.Migrate(context.Background()))
	return conn
}

func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestNewDBConnection_RejectsDocumentDriver(t *testing.T) {
	_, err := NewDBConnection(context.Background(), &config.StoreConfig{
		Driver: constants.StoreDriverMongoDB,
		URI:    "mongodb://localhost",
	}, logger.NewNoopLogger())
	require.Error(t, err)
}

func TestEarthquakeRepository(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := NewEarthquakeRepository(conn.DB())

	t.Run("empty table", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	origin := time.Date(2018, 9, 28, 10, 2, 43, 0, time.UTC)
	full := &models.Earthquake{
		ID:                      "eq-palu",
		Name:                    "Palu",
		UsgsID:                  strPtr("us1000h3p4"),
		OriginTime:              &origin,
		NoviantyRuptureDuration: floatPtr(50),
		NoviantyMw:              floatPtr(7.5),
		NoaaTsunami:             boolPtr(true),
		NoaaTsunamiID:           int64Ptr(5683),
		Unknown1:                int64Ptr(3),
		Epicenter:               &orb.Point{119.846, -0.256},
	}
	sparse := &models.Earthquake{ID: "eq-sparse", Name: "Just testing", UsgsDepth: floatPtr(5.2)}
	require.NoError(t, conn.DB().Create(newEarthquakeRow(full)).Error)
	require.NoError(t, conn.DB().Create(newEarthquakeRow(sparse)).Error)

	t.Run("find all", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "eq-palu")
		require.NoError(t, err)
		assert.Equal(t, "Palu", got.Name)
		require.NotNil(t, got.OriginTime)
		assert.True(t, origin.Equal(*got.OriginTime))
		assert.Equal(t, &orb.Point{119.846, -0.256}, got.Epicenter)
		assert.Equal(t, int64(3), *got.Unknown1)
		require.NotNil(t, got.NoaaTsunami)
		assert.True(t, *got.NoaaTsunami)
	})

	t.Run("absent fields stay nil", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "eq-sparse")
		require.NoError(t, err)
		assert.Equal(t, 5.2, *got.UsgsDepth)
		assert.Nil(t, got.OriginTime)
		assert.Nil(t, got.Epicenter)
		assert.Nil(t, got.NoaaTsunami)
	})

	t.Run("unknown id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "")
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestTsunamiEventRepository_FindRecent(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := NewTsunamiEventRepository(conn.DB())

	events, err := repo.FindRecent(ctx, 100)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	seed := []*models.TsunamiEvent{
		{ID: 1, Year: intPtr(1883), Country: strPtr("INDONESIA")},
		{ID: 2},
		{ID: 3, Year: intPtr(2011), MaximumWaterHeight: floatPtr(39.26)},
		{ID: 4, Year: intPtr(2004)},
		{ID: 5, Year: intPtr(2011)},
	}
	for _, ev := range seed {
		require.NoError(t, conn.DB().Create(newTsunamiEventRow(ev)).Error)
	}

	events, err = repo.FindRecent(ctx, 100)
	require.NoError(t, err)
	ids := make([]int64, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []int64{3, 5, 4, 1, 2}, ids)
	assert.Equal(t, 39.26, *events[0].MaximumWaterHeight)
	assert.Nil(t, events[4].Year)

	limited, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestTsunamiEventRepository_CapsAtLimit(t *testing.T) {
	conn := newTestConnection(t)
	for i := 1; i <= 150; i++ {
		require.NoError(t, conn.DB().Create(&tsunamiEventRow{ID: int64(i), Year: intPtr(1800 + i)}).Error)
	}

	events, err := NewTsunamiEventRepository(conn.DB()).FindRecent(context.Background(), constants.TsunamiEventListLimit)
	require.NoError(t, err)
	require.Len(t, events, constants.TsunamiEventListLimit)
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, *events[i-1].Year, *events[i].Year)
	}
	assert.Equal(t, 1950, *events[0].Year)
}

func TestDecodePoint(t *testing.T) {
	assert.Nil(t, decodePoint(nil))
	assert.Nil(t, decodePoint(datatypes.JSON("null")))
	assert.Nil(t, decodePoint(datatypes.JSON(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`)))
	assert.Nil(t, decodePoint(datatypes.JSON(`{broken`)))
	assert.Equal(t, &orb.Point{1.5, -2}, decodePoint(datatypes.JSON(`{"type":"Point","coordinates":[1.5,-2]}`)))
	assert.Equal(t, &orb.Point{1.5, -2}, decodePoint(encodePoint(&orb.Point{1.5, -2})))
}
