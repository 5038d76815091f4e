package usecase

import (
	"fmt"
	"math"

	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/pkg/utils"
)

const (
	markerSizeDefault     = 30
	markerSizeHighlighted = 50
	markerTintDefault     = "black"
	markerTintHighlighted = "red"
)

type MarkerView struct {
	PlaceID     string            `json:"place_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Coordinate  domain.Coordinate `json:"coordinate"`
	Highlighted bool              `json:"highlighted"`
	Size        int               `json:"size"`
	Tint        string            `json:"tint"`
}

type ListItemView struct {
	PlaceID    string            `json:"place_id"`
	Name       string            `json:"name"`
	Address    string            `json:"address"`
	Rating     string            `json:"rating"`
	OpenStatus domain.OpenStatus `json:"open_status"`
	DistanceM  *int              `json:"distance_m,omitempty"`
	Selected   bool              `json:"selected"`
}

type ListView struct {
	Visible bool           `json:"visible"`
	Items   []ListItemView `json:"items"`
}

type DetailSheetView struct {
	Visible bool          `json:"visible"`
	Place   *domain.Place `json:"place,omitempty"`
}

// ScreenView is everything the presentation layer renders. It is derived
// from a session snapshot and never stored.
type ScreenView struct {
	Phase        domain.Phase       `json:"phase"`
	ErrorMessage *string            `json:"error_message,omitempty"`
	ErrorCode    string             `json:"error_code,omitempty"`
	CanRetry     bool               `json:"can_retry"`
	Radius       int                `json:"radius"`
	Region       domain.Region      `json:"region"`
	UserMarker   *domain.Coordinate `json:"user_marker,omitempty"`
	Markers      []MarkerView       `json:"markers"`
	List         ListView           `json:"list"`
	DetailSheet  DetailSheetView    `json:"detail_sheet"`
}

// DeriveView computes marker highlight, list and detail-sheet visibility
// from the single selection in state. listVisible is user-controlled and
// passed through unchanged.
func DeriveView(state domain.SessionState, listVisible bool) ScreenView {
	selectedID := ""
	if state.SelectedPlaceID != nil {
		selectedID = *state.SelectedPlaceID
	}

	view := ScreenView{
		Phase:        state.Phase,
		ErrorMessage: state.ErrorMessage,
		ErrorCode:    state.ErrorCode,
		CanRetry:     state.Phase == domain.PhaseError,
		Radius:       state.Radius,
		Region:       domain.DefaultRegion,
		UserMarker:   state.Coordinate,
		Markers:      make([]MarkerView, 0, len(state.Places)),
		List: ListView{
			Visible: listVisible,
			Items:   make([]ListItemView, 0, len(state.Places)),
		},
	}

	for _, p := range state.Places {
		highlighted := p.ID == selectedID
		view.Markers = append(view.Markers, markerFor(p, highlighted))
		view.List.Items = append(view.List.Items, listItemFor(p, state.Coordinate, highlighted))
	}

	if selected, ok := state.SelectedPlace(); ok {
		place := selected.Clone()
		view.DetailSheet = DetailSheetView{Visible: true, Place: &place}
		view.Region = domain.FocusRegion(selected.Coordinate)
	} else if state.Coordinate != nil {
		view.Region = domain.OverviewRegion(*state.Coordinate)
	}

	return view
}

func markerFor(p domain.Place, highlighted bool) MarkerView {
	m := MarkerView{
		PlaceID:     p.ID,
		Title:       p.Name,
		Description: fmt.Sprintf("Rating: %s\n%s", p.Rating, p.Address),
		Coordinate:  p.Coordinate,
		Highlighted: highlighted,
		Size:        markerSizeDefault,
		Tint:        markerTintDefault,
	}
	if highlighted {
		m.Size = markerSizeHighlighted
		m.Tint = markerTintHighlighted
	}
	return m
}

func listItemFor(p domain.Place, user *domain.Coordinate, selected bool) ListItemView {
	item := ListItemView{
		PlaceID:    p.ID,
		Name:       p.Name,
		Address:    p.Address,
		Rating:     p.Rating.String(),
		OpenStatus: p.OpenStatus,
		Selected:   selected,
	}
	if user != nil {
		d := int(math.Round(utils.HaversineMeters(*user, p.Coordinate)))
		item.DistanceM = &d
	}
	return item
}
