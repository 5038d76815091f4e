package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/domain/repository"
	"github.com/gym-finder/internal/pkg/errors"
	"github.com/gym-finder/internal/pkg/links"
)

// RadiusInputView is the radius text field with its live validation.
type RadiusInputView struct {
	Text       string       `json:"text"`
	Validation RadiusResult `json:"validation"`
	Warning    *string      `json:"warning,omitempty"`
	CanSubmit  bool         `json:"can_submit"`
}

// ScreenState is the full render payload of a screen.
type ScreenState struct {
	ID          string          `json:"id"`
	View        ScreenView      `json:"view"`
	RadiusInput RadiusInputView `json:"radius_input"`
}

// Screen is one mounted map screen: a DiscoverySession plus the UI-only
// state around it (raw radius text, list visibility). Navigation to the
// detail view hands out copies, never references into the session.
type Screen struct {
	id       string
	session  *DiscoverySession
	location repository.DeviceLocationSource
	links    *links.Builder
	logger   *zap.Logger
	now      func() time.Time

	mu          sync.Mutex
	radiusText  string
	listVisible bool
	lastActive  time.Time
}

func newScreen(
	id string,
	session *DiscoverySession,
	location repository.DeviceLocationSource,
	linkBuilder *links.Builder,
	logger *zap.Logger,
	now func() time.Time,
) *Screen {
	return &Screen{
		id:         id,
		session:    session,
		location:   location,
		links:      linkBuilder,
		logger:     logger.With(zap.String("screen_id", id)),
		now:        now,
		lastActive: now(),
	}
}

func (s *Screen) ID() string {
	return s.id
}

// Session exposes the discovery session for read-only use (snapshots, waits).
func (s *Screen) Session() *DiscoverySession {
	return s.session
}

// ReportLocation forwards a device permission/fix report to the location source.
func (s *Screen) ReportLocation(report domain.LocationReport) {
	s.touch()
	s.location.Report(report)
}

// InputRadius applies a keystroke to the radius field. Non-digit input is
// rejected and the previous text kept.
func (s *Screen) InputRadius(text string) RadiusInputView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = s.now()
	s.radiusText = FilterRadiusInput(s.radiusText, text)
	return radiusInputView(s.radiusText)
}

// SubmitRadius validates the current text and starts a search. Out-of-range
// text is rejected here and never reaches the session.
func (s *Screen) SubmitRadius() (uint64, error) {
	s.mu.Lock()
	text := s.radiusText
	s.lastActive = s.now()
	s.mu.Unlock()

	meters, err := SubmitRadius(text)
	if err != nil {
		s.logger.Debug("Radius submission rejected", zap.String("text", text))
		return 0, err
	}

	return s.session.Search(meters)
}

func (s *Screen) Retry() (uint64, error) {
	s.touch()
	return s.session.Retry()
}

// ToggleList shows or hides the result list. Toggling also drops the
// selection so the sheet does not cover the list.
func (s *Screen) ToggleList() bool {
	s.mu.Lock()
	s.lastActive = s.now()
	s.listVisible = !s.listVisible
	visible := s.listVisible
	s.mu.Unlock()

	s.session.ClearSelection()
	return visible
}

func (s *Screen) SelectFromMarker(placeID string) (domain.Region, bool) {
	s.touch()
	return s.session.SelectPlace(placeID)
}

// SelectFromList selects a place and collapses the list.
func (s *Screen) SelectFromList(placeID string) (domain.Region, bool) {
	s.touch()
	region, ok := s.session.SelectPlace(placeID)
	if !ok {
		return domain.Region{}, false
	}

	s.mu.Lock()
	s.listVisible = false
	s.mu.Unlock()

	return region, true
}

func (s *Screen) ClearSelection() {
	s.touch()
	s.session.ClearSelection()
}

// OpenDetails returns the navigation parameter of the detail view. Only the
// selected place can be opened.
func (s *Screen) OpenDetails(placeID string) (domain.PlaceDetails, error) {
	s.touch()
	state := s.session.Snapshot()
	place, ok := state.FindPlace(placeID)
	if !ok {
		return domain.PlaceDetails{}, errors.ErrPlaceNotFound.WithDetails(map[string]interface{}{
			"place_id": placeID,
		})
	}
	if state.SelectedPlaceID == nil || *state.SelectedPlaceID != placeID {
		return domain.PlaceDetails{}, errors.ErrPlaceNotSelected.WithDetails(map[string]interface{}{
			"place_id": placeID,
		})
	}
	return s.links.Details(place), nil
}

// State derives the current render payload.
func (s *Screen) State() ScreenState {
	s.mu.Lock()
	text, listVisible := s.radiusText, s.listVisible
	s.mu.Unlock()

	return ScreenState{
		ID:          s.id,
		View:        DeriveView(s.session.Snapshot(), listVisible),
		RadiusInput: radiusInputView(text),
	}
}

// AwaitSettled waits for the running search, then returns the state.
func (s *Screen) AwaitSettled(ctx context.Context) (ScreenState, error) {
	if _, err := s.session.AwaitSettled(ctx); err != nil {
		return s.State(), err
	}
	return s.State(), nil
}

func (s *Screen) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Screen) close() {
	s.session.Close()
}

func (s *Screen) touch() {
	s.mu.Lock()
	s.lastActive = s.now()
	s.mu.Unlock()
}

func radiusInputView(text string) RadiusInputView {
	result := ValidateRadius(text)
	view := RadiusInputView{
		Text:       text,
		Validation: result,
		CanSubmit:  result.CanSubmit(),
	}
	if result.ShowWarning() {
		warning := RadiusWarning
		view.Warning = &warning
	}
	return view
}
