package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/domain/repository"
	"github.com/gym-finder/internal/observability"
	"github.com/gym-finder/internal/pkg/errors"
)

// User-facing messages of the Error phase.
const (
	MessagePermissionDenied    = "Permission to access location was denied."
	MessageLocationUnavailable = "Unable to determine your current location. Try again."
	MessageNetworkFailure      = "Failed to fetch gyms. Check your internet and try again."
	messageProviderFailure     = "Failed to fetch gyms: the places service returned %s. Try again later."
)

const defaultSearchTimeout = 15 * time.Second

// DiscoverySession owns the discovery state of one mounted map screen.
//
// Commands may be called from any goroutine. Search runs location
// acquisition and the place search in a background goroutine; each search
// is tagged with a sequence number and only the latest issued search may
// change state, regardless of completion order.
type DiscoverySession struct {
	location repository.LocationSource
	places   repository.PlaceSearchClient
	metrics  *observability.DiscoveryCollector
	logger   *zap.Logger
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     domain.SessionState
	seq       uint64
	requested int
	changed   chan struct{}
	closed    bool
}

type DiscoveryOption func(*DiscoverySession)

// WithSearchTimeout bounds location acquisition plus place search.
func WithSearchTimeout(d time.Duration) DiscoveryOption {
	return func(s *DiscoverySession) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithMetrics(m *observability.DiscoveryCollector) DiscoveryOption {
	return func(s *DiscoverySession) {
		s.metrics = m
	}
}

// NewDiscoverySession creates an Idle session with the default radius.
func NewDiscoverySession(
	location repository.LocationSource,
	places repository.PlaceSearchClient,
	logger *zap.Logger,
	opts ...DiscoveryOption,
) *DiscoverySession {
	ctx, cancel := context.WithCancel(context.Background())

	s := &DiscoverySession{
		location:  location,
		places:    places,
		logger:    logger,
		timeout:   defaultSearchTimeout,
		ctx:       ctx,
		cancel:    cancel,
		requested: domain.DefaultRadius,
		changed:   make(chan struct{}),
		state: domain.SessionState{
			Phase:  domain.PhaseIdle,
			Radius: domain.DefaultRadius,
			Places: []domain.Place{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Search starts a new search and returns its sequence number. The radius
// must already be validated; out-of-range values are rejected without any
// state change.
func (s *DiscoverySession) Search(radiusMeters int) (uint64, error) {
	if !domain.RadiusInRange(radiusMeters) {
		return 0, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"radius": radiusMeters,
		})
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, errors.ErrScreenClosed
	}

	s.seq++
	seq := s.seq
	s.requested = radiusMeters
	s.state.Phase = domain.PhaseLoading
	s.state.ErrorMessage = nil
	s.state.ErrorCode = ""
	s.notifyLocked()
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Debug("Search started", zap.Uint64("seq", seq), zap.Int("radius", radiusMeters))

	go s.run(seq, radiusMeters)

	return seq, nil
}

// Retry re-issues the radius of the last Search command.
func (s *DiscoverySession) Retry() (uint64, error) {
	s.mu.Lock()
	radius := s.requested
	s.mu.Unlock()

	return s.Search(radius)
}

// SelectPlace selects a place of the current result set and returns the
// region the map should animate to. Unknown ids are ignored.
func (s *DiscoverySession) SelectPlace(id string) (domain.Region, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	place, ok := s.state.FindPlace(id)
	if !ok {
		s.logger.Debug("Ignoring selection of unknown place", zap.String("place_id", id))
		return domain.Region{}, false
	}

	if s.state.SelectedPlaceID == nil || *s.state.SelectedPlaceID != id {
		selected := id
		s.state.SelectedPlaceID = &selected
		s.notifyLocked()
	}

	return domain.FocusRegion(place.Coordinate), true
}

func (s *DiscoverySession) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SelectedPlaceID == nil {
		return
	}
	s.state.SelectedPlaceID = nil
	s.notifyLocked()
}

// Snapshot returns a consistent deep copy of the state.
func (s *DiscoverySession) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Changes returns a channel that is closed on the next state change.
func (s *DiscoverySession) Changes() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// AwaitSettled blocks until the session leaves the Loading phase.
func (s *DiscoverySession) AwaitSettled(ctx context.Context) (domain.SessionState, error) {
	for {
		s.mu.Lock()
		snapshot := s.state.Clone()
		changed, closed := s.changed, s.closed
		s.mu.Unlock()

		if snapshot.Phase != domain.PhaseLoading {
			return snapshot, nil
		}
		if closed {
			return snapshot, errors.ErrScreenClosed
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return snapshot, ctx.Err()
		}
	}
}

// Close cancels in-flight calls and waits for them. Later commands fail
// with ErrScreenClosed.
func (s *DiscoverySession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.notifyLocked()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *DiscoverySession) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *DiscoverySession) run(seq uint64, radius int) {
	defer s.wg.Done()

	start := time.Now()
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	coordinate, err := s.acquireLocation(ctx)
	if err != nil {
		s.complete(seq, radius, start, nil, nil, err)
		return
	}

	s.update(seq, func(state *domain.SessionState) {
		c := coordinate
		state.Coordinate = &c
	})

	places, err := s.places.FetchNearby(ctx, coordinate, radius)
	if err != nil {
		if !errors.Is(err, errors.ErrProviderError) && !errors.Is(err, errors.ErrNetworkError) {
			err = fmt.Errorf("%v: %w", err, errors.ErrNetworkError)
		}
		s.complete(seq, radius, start, &coordinate, nil, err)
		return
	}
	if places == nil {
		places = []domain.Place{}
	}

	s.complete(seq, radius, start, &coordinate, places, nil)
}

func (s *DiscoverySession) acquireLocation(ctx context.Context) (domain.Coordinate, error) {
	permission, err := s.location.RequestPermission(ctx)
	if err != nil {
		return domain.Coordinate{}, asLocationError(err)
	}
	if permission != domain.PermissionGranted {
		return domain.Coordinate{}, errors.ErrPermissionDenied
	}

	coordinate, err := s.location.CurrentCoordinate(ctx)
	if err != nil {
		return domain.Coordinate{}, asLocationError(err)
	}

	return coordinate, nil
}

func asLocationError(err error) error {
	if errors.Is(err, errors.ErrPermissionDenied) || errors.Is(err, errors.ErrLocationUnavailable) {
		return err
	}
	return fmt.Errorf("%v: %w", err, errors.ErrLocationUnavailable)
}

// update applies an intermediate change if seq is still the current search.
func (s *DiscoverySession) update(seq uint64, apply func(*domain.SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || s.closed {
		return
	}
	apply(&s.state)
	s.notifyLocked()
}

func (s *DiscoverySession) complete(
	seq uint64,
	radius int,
	start time.Time,
	coordinate *domain.Coordinate,
	places []domain.Place,
	err error,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if seq != s.seq {
		s.logger.Debug("Discarding stale search completion",
			zap.Uint64("seq", seq),
			zap.Uint64("current_seq", s.seq))
		s.metrics.IncStaleCompletions()
		return
	}

	if err != nil {
		message, code, outcome := describeFailure(err)
		s.state.Phase = domain.PhaseError
		s.state.ErrorMessage = &message
		s.state.ErrorCode = code
		s.state.Places = []domain.Place{}
		s.state.SelectedPlaceID = nil
		if code == errors.CodePermissionDenied || code == errors.CodeLocationUnavailable {
			s.state.Coordinate = nil
		} else if coordinate != nil {
			c := *coordinate
			s.state.Coordinate = &c
		}

		s.logger.Warn("Search failed",
			zap.Uint64("seq", seq),
			zap.Int("radius", radius),
			zap.String("code", code),
			zap.Error(err))
		s.metrics.ObserveSearch(outcome, time.Since(start), 0)
		s.notifyLocked()
		return
	}

	s.state.Phase = domain.PhaseReady
	s.state.Places = places
	s.state.Radius = radius
	if coordinate != nil {
		c := *coordinate
		s.state.Coordinate = &c
	}
	if s.state.SelectedPlaceID != nil {
		if _, ok := s.state.FindPlace(*s.state.SelectedPlaceID); !ok {
			s.state.SelectedPlaceID = nil
		}
	}

	s.logger.Info("Search completed",
		zap.Uint64("seq", seq),
		zap.Int("radius", radius),
		zap.Int("places", len(places)))
	s.metrics.ObserveSearch(observability.OutcomeReady, time.Since(start), len(places))
	s.notifyLocked()
}

func describeFailure(err error) (message, code, outcome string) {
	switch errors.Code(err) {
	case errors.CodePermissionDenied:
		return MessagePermissionDenied, errors.CodePermissionDenied, observability.OutcomePermissionDenied
	case errors.CodeLocationUnavailable:
		return MessageLocationUnavailable, errors.CodeLocationUnavailable, observability.OutcomeLocationUnavailable
	case errors.CodeProviderError:
		return fmt.Sprintf(messageProviderFailure, providerStatus(err)), errors.CodeProviderError, observability.OutcomeProviderError
	default:
		return MessageNetworkFailure, errors.CodeNetworkError, observability.OutcomeNetworkError
	}
}

func providerStatus(err error) string {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		if status, ok := appErr.Details["status"].(string); ok && status != "" {
			return status
		}
	}
	return "an error"
}
