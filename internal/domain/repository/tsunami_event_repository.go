package repository

import (
	"context"

	"github.com/ecnlab/ecn/internal/domain/models"
)

// TsunamiEventRepository reads the historical tsunami catalogue.
type TsunamiEventRepository interface {
	// FindRecent returns at most limit events ordered by year descending. Events
	// without a year sort last; ties keep the store's natural order.
	FindRecent(ctx context.Context, limit int) ([]*models.TsunamiEvent, error)
}
