package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/gym-finder/internal/domain"
)

type MockLocationSource struct {
	mock.Mock
}

func (m *MockLocationSource) RequestPermission(ctx context.Context) (domain.Permission, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Permission), args.Error(1)
}

func (m *MockLocationSource) CurrentCoordinate(ctx context.Context) (domain.Coordinate, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Coordinate), args.Error(1)
}

type MockPlaceSearchClient struct {
	mock.Mock
}

func (m *MockPlaceSearchClient) FetchNearby(ctx context.Context, center domain.Coordinate, radius int) ([]domain.Place, error) {
	args := m.Called(ctx, center, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

// hangingPlaceSearchClient never answers on its own; it returns only when
// ctx ends, like a provider that stopped responding.
type hangingPlaceSearchClient struct{}

func (hangingPlaceSearchClient) FetchNearby(ctx context.Context, _ domain.Coordinate, _ int) ([]domain.Place, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// hangingLocationSource never resolves the permission prompt.
type hangingLocationSource struct{}

func (hangingLocationSource) RequestPermission(ctx context.Context) (domain.Permission, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (hangingLocationSource) CurrentCoordinate(ctx context.Context) (domain.Coordinate, error) {
	<-ctx.Done()
	return domain.Coordinate{}, ctx.Err()
}

// fakeDeviceLocation is a DeviceLocationSource that answers immediately
// from the last report.
type fakeDeviceLocation struct {
	mu     sync.Mutex
	report domain.LocationReport
}

func (f *fakeDeviceLocation) Report(r domain.LocationReport) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.report = r
}

func (f *fakeDeviceLocation) RequestPermission(context.Context) (domain.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.report.Permission == "" {
		return domain.PermissionDenied, nil
	}
	return f.report.Permission, nil
}

func (f *fakeDeviceLocation) CurrentCoordinate(context.Context) (domain.Coordinate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.report.Coordinate == nil {
		return domain.Coordinate{}, context.DeadlineExceeded
	}
	return *f.report.Coordinate, nil
}
