package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/internal/domain/repository"
	"github.com/ecnlab/ecn/pkg/errors"
)

type tsunamiEventRepository struct {
	db *gorm.DB
}

// NewTsunamiEventRepository reads the NOAA catalogue from the tsunami_events table.
func NewTsunamiEventRepository(db *gorm.DB) repository.TsunamiEventRepository {
	return &tsunamiEventRepository{db: db}
}

// FindRecent orders by year descending, undated rows last, ties by id.
func (r *tsunamiEventRepository) FindRecent(ctx context.Context, limit int) ([]*models.TsunamiEvent, error) {
	var rows []tsunamiEventRow
	err := r.db.WithContext(ctx).
		Order("year IS NULL").
		Order("year DESC").
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Upstream(err)
	}
	out := make([]*models.TsunamiEvent, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
