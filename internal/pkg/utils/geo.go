package utils

import (
	"math"

	"github.com/gym-finder/internal/domain"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between a and b in meters.
func HaversineMeters(a, b domain.Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	lat1Rad := a.Latitude * math.Pi / 180.0
	lat2Rad := b.Latitude * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}
