package devicelocation

import (
	"context"
	"fmt"
	"sync"

	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/domain/repository"
	"github.com/gym-finder/internal/pkg/errors"
	"go.uber.org/zap"
)

// Source answers LocationSource calls from the latest device report.
// Calls made before the device has reported block until a report arrives
// or ctx ends, mirroring an OS permission prompt waiting for the user.
type Source struct {
	mu         sync.Mutex
	permission domain.Permission
	fix        *domain.Coordinate
	updated    chan struct{}
	logger     *zap.Logger
}

var _ repository.DeviceLocationSource = (*Source)(nil)

func NewSource(logger *zap.Logger) *Source {
	return &Source{
		updated: make(chan struct{}),
		logger:  logger,
	}
}

// Report stores a new permission decision and fix.
func (s *Source) Report(r domain.LocationReport) {
	s.mu.Lock()
	s.permission = r.Permission
	if r.Permission == domain.PermissionDenied {
		s.fix = nil
	} else if r.Coordinate != nil {
		c := *r.Coordinate
		s.fix = &c
	}
	close(s.updated)
	s.updated = make(chan struct{})
	s.mu.Unlock()

	s.logger.Debug("Device location reported",
		zap.String("permission", string(r.Permission)),
		zap.Bool("has_fix", r.Coordinate != nil))
}

func (s *Source) RequestPermission(ctx context.Context) (domain.Permission, error) {
	for {
		s.mu.Lock()
		permission, updated := s.permission, s.updated
		s.mu.Unlock()

		if permission != "" {
			return permission, nil
		}

		select {
		case <-updated:
		case <-ctx.Done():
			return "", fmt.Errorf("waiting for permission: %v: %w", ctx.Err(), errors.ErrLocationUnavailable)
		}
	}
}

func (s *Source) CurrentCoordinate(ctx context.Context) (domain.Coordinate, error) {
	for {
		s.mu.Lock()
		permission, fix, updated := s.permission, s.fix, s.updated
		s.mu.Unlock()

		if permission == domain.PermissionDenied {
			return domain.Coordinate{}, errors.ErrPermissionDenied
		}
		if fix != nil {
			return *fix, nil
		}

		select {
		case <-updated:
		case <-ctx.Done():
			return domain.Coordinate{}, fmt.Errorf("waiting for fix: %v: %w", ctx.Err(), errors.ErrLocationUnavailable)
		}
	}
}
