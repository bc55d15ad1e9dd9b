//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

func TestPostgresRepositories(t *testing.T) {
	if os.Getenv("SKIP_DOCKER_TESTS") == "true" {
		t.Skip("Skipping Docker-dependent tests")
	}

	ctx := context.Background()
	pgContainer, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ecn"),
		tcpostgres.WithUsername("ecn"),
		tcpostgres.WithPassword("ecn"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := NewDBConnection(ctx, &config.StoreConfig{
		Driver:         constants.StoreDriverPostgres,
		URI:            connStr,
		ConnectTimeout: 10 * time.Second,
		MaxConns:       4,
	}, logger.NewNoopLogger())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.DB().AutoMigrate(&earthquakeRow{}, &tsunamiEventRow{}))

	require.NoError(t, conn.DB().Create(newEarthquakeRow(&models.Earthquake{
		ID:        "eq-1",
		Name:      "Tohoku",
		Epicenter: &orb.Point{142.373, 38.297},
	})).Error)

	earthquakes := NewEarthquakeRepository(conn.DB())
	eq, err := earthquakes.FindByID(ctx, "eq-1")
	require.NoError(t, err)
	assert.Equal(t, &orb.Point{142.373, 38.297}, eq.Epicenter)

	_, err = earthquakes.FindByID(ctx, "eq-2")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	year := func(v int) *int { return &v }
	for _, ev := range []*models.TsunamiEvent{
		{ID: 10, Year: year(1960)},
		{ID: 11},
		{ID: 12, Year: year(2011)},
	} {
		require.NoError(t, conn.DB().Create(newTsunamiEventRow(ev)).Error)
	}

	events, err := NewTsunamiEventRepository(conn.DB()).FindRecent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, int64(12), events[0].ID)
	assert.Equal(t, int64(10), events[1].ID)
	assert.Equal(t, int64(11), events[2].ID)
}
