package repository

import (
	"context"

	"github.com/gym-finder/internal/domain"
)

// PlaceSearchClient finds venues around a coordinate.
type PlaceSearchClient interface {
	// FetchNearby returns normalized places in provider order. An empty
	// slice means nothing was found; provider rejections are errors
	// (errors.ErrProviderError, errors.ErrNetworkError), never empty results.
	FetchNearby(ctx context.Context, center domain.Coordinate, radiusMeters int) ([]domain.Place, error)
}
