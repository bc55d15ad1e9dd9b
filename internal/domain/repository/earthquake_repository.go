package repository

import (
	"context"

	"github.com/ecnlab/ecn/internal/domain/models"
)

// EarthquakeRepository reads seismic events from the record store.
type EarthquakeRepository interface {
	// FindAll returns every earthquake in the store's natural order. The result is
	// never nil.
	FindAll(ctx context.Context) ([]*models.Earthquake, error)

	// FindByID returns the earthquake with the given id. It returns an error
	// matching errors.ErrNotFound when no record exists and errors.ErrInvalidInput
	// when id cannot be a key of the store. It never returns (nil, nil).
	FindByID(ctx context.Context, id string) (*models.Earthquake, error)
}
