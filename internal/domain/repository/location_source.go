package repository

import (
	"context"

	"github.com/gym-finder/internal/domain"
)

// LocationSource wraps device location acquisition.
type LocationSource interface {
	// RequestPermission asks for foreground location access.
	RequestPermission(ctx context.Context) (domain.Permission, error)

	// CurrentCoordinate returns a fresh fix or errors.ErrLocationUnavailable.
	CurrentCoordinate(ctx context.Context) (domain.Coordinate, error)
}

// DeviceLocationSource is a LocationSource fed by reports pushed from the
// device that hosts the screen.
type DeviceLocationSource interface {
	LocationSource
	Report(r domain.LocationReport)
}
