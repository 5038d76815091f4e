package googleplaces

import (
	"strings"

	"go.uber.org/zap"

	"github.com/gym-finder/internal/domain"
)

const noAddress = "No address available"

func normalize(r placeResult) domain.Place {
	place := domain.Place{
		ID:         r.PlaceID,
		Name:       r.Name,
		Address:    noAddress,
		Rating:     domain.Unrated(),
		OpenStatus: domain.OpenStatusUnknown,
		Coordinate: domain.Coordinate{
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
		},
	}

	if r.Vicinity != nil && strings.TrimSpace(*r.Vicinity) != "" {
		place.Address = *r.Vicinity
	}
	if r.Rating != nil {
		place.Rating = domain.RatingOf(*r.Rating)
	}
	if r.OpeningHours != nil && r.OpeningHours.OpenNow != nil {
		if *r.OpeningHours.OpenNow {
			place.OpenStatus = domain.OpenNow
		} else {
			place.OpenStatus = domain.Closed
		}
	}
	// first photo only
	if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
		ref := r.Photos[0].PhotoReference
		place.PhotoRef = &ref
	}

	return place
}

// normalizeAll keeps provider order. Results without a place_id are
// skipped and only the first result per place_id survives.
func normalizeAll(results []placeResult, logger *zap.Logger) []domain.Place {
	places := make([]domain.Place, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for i, r := range results {
		if strings.TrimSpace(r.PlaceID) == "" {
			logger.Warn("Dropping place without place_id",
				zap.Int("index", i),
				zap.String("name", r.Name))
			continue
		}
		if _, dup := seen[r.PlaceID]; dup {
			logger.Warn("Dropping duplicate place",
				zap.Int("index", i),
				zap.String("place_id", r.PlaceID))
			continue
		}
		seen[r.PlaceID] = struct{}{}
		places = append(places, normalize(r))
	}
	return places
}
