package mongo

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/internal/domain/repository"
	"github.com/ecnlab/ecn/pkg/errors"
)

type earthquakeRepository struct {
	coll *mongo.Collection
}

// NewEarthquakeRepository reads earthquakes from the earthquake collection of db.
func NewEarthquakeRepository(db *mongo.Database) repository.EarthquakeRepository {
	return &earthquakeRepository{coll: db.Collection(EarthquakeCollection)}
}

func (r *earthquakeRepository) FindAll(ctx context.Context) ([]*models.Earthquake, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Upstream(err)
	}
	defer cur.Close(ctx)

	out := make([]*models.Earthquake, 0)
	for cur.Next(ctx) {
		var doc earthquakeDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.ErrInternal.WithError(err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Upstream(err)
	}
	return out, nil
}

func (r *earthquakeRepository) FindByID(ctx context.Context, id string) (*models.Earthquake, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.InvalidInput("earthquake id %q is not a valid identifier", id)
	}

	var doc earthquakeDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	switch {
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return nil, errors.NotFound("earthquake", id)
	case err != nil:
		return nil, errors.Upstream(err)
	}
	return doc.toDomain(), nil
}
