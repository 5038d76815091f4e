package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/domain/repository"
	"github.com/gym-finder/internal/observability"
	"github.com/gym-finder/internal/pkg/errors"
	"github.com/gym-finder/internal/pkg/links"
)

// LocationSourceFactory creates the location source of a new screen.
type LocationSourceFactory func() repository.DeviceLocationSource

// ScreenRegistry owns the mounted screens of the process.
type ScreenRegistry struct {
	newLocation LocationSourceFactory
	places      repository.PlaceSearchClient
	links       *links.Builder
	metrics     *observability.DiscoveryCollector
	logger      *zap.Logger
	sessionOpts []DiscoveryOption
	now         func() time.Time

	mu      sync.RWMutex
	screens map[string]*Screen
}

func NewScreenRegistry(
	newLocation LocationSourceFactory,
	places repository.PlaceSearchClient,
	linkBuilder *links.Builder,
	metrics *observability.DiscoveryCollector,
	logger *zap.Logger,
	sessionOpts ...DiscoveryOption,
) *ScreenRegistry {
	return &ScreenRegistry{
		newLocation: newLocation,
		places:      places,
		links:       linkBuilder,
		metrics:     metrics,
		logger:      logger,
		sessionOpts: append([]DiscoveryOption{WithMetrics(metrics)}, sessionOpts...),
		now:         time.Now,
		screens:     make(map[string]*Screen),
	}
}

// Open mounts a screen and issues the initial search with the default
// radius. initial, when set, is applied before the search starts.
func (r *ScreenRegistry) Open(initial *domain.LocationReport) (*Screen, error) {
	id := uuid.NewString()
	location := r.newLocation()
	if initial != nil {
		location.Report(*initial)
	}

	logger := r.logger.With(zap.String("screen_id", id))
	session := NewDiscoverySession(location, r.places, logger, r.sessionOpts...)
	screen := newScreen(id, session, location, r.links, r.logger, r.now)

	if _, err := session.Search(domain.DefaultRadius); err != nil {
		session.Close()
		return nil, err
	}

	r.mu.Lock()
	r.screens[id] = screen
	count := len(r.screens)
	r.mu.Unlock()

	r.metrics.SetOpenScreens(count)
	r.logger.Info("Screen opened", zap.String("screen_id", id), zap.Int("open_screens", count))

	return screen, nil
}

func (r *ScreenRegistry) Get(id string) (*Screen, error) {
	r.mu.RLock()
	screen, ok := r.screens[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.ErrScreenNotFound.WithDetails(map[string]interface{}{"screen_id": id})
	}
	return screen, nil
}

// Close unmounts a screen and discards its session.
func (r *ScreenRegistry) Close(id string) error {
	r.mu.Lock()
	screen, ok := r.screens[id]
	delete(r.screens, id)
	count := len(r.screens)
	r.mu.Unlock()

	if !ok {
		return errors.ErrScreenNotFound.WithDetails(map[string]interface{}{"screen_id": id})
	}

	screen.close()
	r.metrics.SetOpenScreens(count)
	r.logger.Info("Screen closed", zap.String("screen_id", id), zap.Int("open_screens", count))

	return nil
}

// CloseIdle unmounts screens inactive for longer than ttl and returns how
// many were closed.
func (r *ScreenRegistry) CloseIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	idle := make([]*Screen, 0)
	for id, screen := range r.screens {
		if screen.LastActive().Before(cutoff) {
			idle = append(idle, screen)
			delete(r.screens, id)
		}
	}
	count := len(r.screens)
	r.mu.Unlock()

	for _, screen := range idle {
		screen.close()
	}
	if len(idle) > 0 {
		r.metrics.SetOpenScreens(count)
		r.logger.Info("Idle screens closed", zap.Int("closed", len(idle)), zap.Int("open_screens", count))
	}

	return len(idle)
}

// CloseAll unmounts every screen; used on shutdown.
func (r *ScreenRegistry) CloseAll() {
	r.mu.Lock()
	screens := r.screens
	r.screens = make(map[string]*Screen)
	r.mu.Unlock()

	for _, screen := range screens {
		screen.close()
	}
	r.metrics.SetOpenScreens(0)
}

func (r *ScreenRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.screens)
}
