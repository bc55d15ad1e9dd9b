package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/internal/domain/repository"
	"github.com/ecnlab/ecn/pkg/errors"
)

const sortYearField = "_sortYear"

type tsunamiEventRepository struct {
	coll *mongo.Collection
}

// NewTsunamiEventRepository reads the NOAA catalogue from the tsunamiEvent collection of db.
func NewTsunamiEventRepository(db *mongo.Database) repository.TsunamiEventRepository {
	return &tsunamiEventRepository{coll: db.Collection(TsunamiEventCollection)}
}

// FindRecent orders by YEAR descending with undated rows last. Non-numeric YEAR
// values (empty strings from CSV imports) count as undated; BSON would otherwise
// sort strings above every number.
func (r *tsunamiEventRepository) FindRecent(ctx context.Context, limit int) ([]*models.TsunamiEvent, error) {
	cur, err := r.coll.Aggregate(ctx, recentPipeline(limit))
	if err != nil {
		return nil, errors.Upstream(err)
	}
	defer cur.Close(ctx)

	out := make([]*models.TsunamiEvent, 0, limit)
	for cur.Next(ctx) {
		out = append(out, decodeTsunamiEvent(cur.Current))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Upstream(err)
	}
	return out, nil
}

func recentPipeline(limit int) mongo.Pipeline {
	numericYear := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$isNumber", Value: "$" + fieldYear}},
		"$" + fieldYear,
		nil,
	}}}
	return mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{{Key: sortYearField, Value: numericYear}}}},
		{{Key: "$sort", Value: bson.D{{Key: sortYearField, Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: bson.D{{Key: sortYearField, Value: 0}}}},
	}
}
