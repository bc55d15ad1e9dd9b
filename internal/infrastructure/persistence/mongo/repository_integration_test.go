//go:build integration

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

func TestMongoRepositories(t *testing.T) {
	if os.Getenv("SKIP_DOCKER_TESTS") == "true" {
		t.Skip("Skipping Docker-dependent tests")
	}

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	}()

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	conn, err := NewConnection(ctx, &config.StoreConfig{
		URI:            uri,
		Database:       "ecn",
		ConnectTimeout: 10 * time.Second,
	}, logger.NewNoopLogger())
	require.NoError(t, err)
	defer conn.Close(ctx)
	require.NoError(t, conn.Ping(ctx))

	eqColl := conn.Database().Collection(EarthquakeCollection)
	name := "Aceh"
	seeded := newEarthquakeDocument(&models.Earthquake{Name: name})
	seeded.ID = primitive.NewObjectID()
	_, err = eqColl.InsertOne(ctx, seeded)
	require.NoError(t, err)

	earthquakes := NewEarthquakeRepository(conn.Database())

	t.Run("find all", func(t *testing.T) {
		all, err := earthquakes.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, name, all[0].Name)
	})

	t.Run("find by id", func(t *testing.T) {
		eq, err := earthquakes.FindByID(ctx, seeded.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, seeded.ID.Hex(), eq.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := earthquakes.FindByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := earthquakes.FindByID(ctx, "not-an-object-id")
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	tsColl := conn.Database().Collection(TsunamiEventCollection)
	_, err = tsColl.InsertMany(ctx, []interface{}{
		bson.D{{Key: "ID", Value: 1}, {Key: "YEAR", Value: 1883}},
		bson.D{{Key: "ID", Value: 2}},
		bson.D{{Key: "ID", Value: 3}, {Key: "YEAR", Value: 2011}},
		bson.D{{Key: "ID", Value: 4}, {Key: "YEAR", Value: ""}},
		bson.D{{Key: "ID", Value: 5}, {Key: "YEAR", Value: 2004.0}},
	})
	require.NoError(t, err)

	tsunamis := NewTsunamiEventRepository(conn.Database())

	t.Run("recent tsunami events", func(t *testing.T) {
		events, err := tsunamis.FindRecent(ctx, 100)
		require.NoError(t, err)
		ids := make([]int64, 0, len(events))
		for _, ev := range events {
			ids = append(ids, ev.ID)
		}
		assert.Equal(t, []int64{3, 5, 1, 2, 4}, ids)
	})

	t.Run("limit", func(t *testing.T) {
		events, err := tsunamis.FindRecent(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}
