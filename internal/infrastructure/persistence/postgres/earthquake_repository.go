package postgres

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/internal/domain/repository"
	"github.com/ecnlab/ecn/pkg/errors"
)

type earthquakeRepository struct {
	db *gorm.DB
}

// NewEarthquakeRepository reads earthquakes from the earthquakes table.
func NewEarthquakeRepository(db *gorm.DB) repository.EarthquakeRepository {
	return &earthquakeRepository{db: db}
}

func (r *earthquakeRepository) FindAll(ctx context.Context) ([]*models.Earthquake, error) {
	var rows []earthquakeRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errors.Upstream(err)
	}
	out := make([]*models.Earthquake, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *earthquakeRepository) FindByID(ctx context.Context, id string) (*models.Earthquake, error) {
	if id == "" {
		return nil, errors.InvalidInput("earthquake id is required")
	}
	var row earthquakeRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.NotFound("earthquake", id)
	case err != nil:
		return nil, errors.Upstream(err)
	}
	return row.toDomain(), nil
}
