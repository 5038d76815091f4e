package dto

import (
	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/usecase"
)

// Selection sources
const (
	SelectionSourceMap  = "map"
	SelectionSourceList = "list"
)

// LocationReportRequest - a device permission/fix report
type LocationReportRequest struct {
	Permission string   `json:"permission" validate:"required,oneof=granted denied"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

// ToDomain converts the request; a denied report never carries a fix.
func (r LocationReportRequest) ToDomain() domain.LocationReport {
	report := domain.LocationReport{Permission: domain.Permission(r.Permission)}
	if report.Permission == domain.PermissionGranted && r.Latitude != nil && r.Longitude != nil {
		report.Coordinate = &domain.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	return report
}

// OpenScreenRequest - mounts a new screen, optionally with the first location report
type OpenScreenRequest struct {
	Location *LocationReportRequest `json:"location,omitempty"`
}

// RadiusInputRequest - the radius field text after a keystroke
type RadiusInputRequest struct {
	Text string `json:"text" validate:"max=16"`
}

// SelectPlaceRequest - a marker tap or a list row tap
type SelectPlaceRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
	Source  string `json:"source" validate:"omitempty,oneof=map list"`
}

// SelectionResponse - the region the map animates to plus the new state
type SelectionResponse struct {
	Region domain.Region       `json:"region"`
	Screen usecase.ScreenState `json:"screen"`
}

// ListToggleResponse - list visibility after the toggle
type ListToggleResponse struct {
	Visible bool                `json:"visible"`
	Screen  usecase.ScreenState `json:"screen"`
}

// RadiusValidationResponse - stateless validation of radius text
type RadiusValidationResponse struct {
	Text      string               `json:"text"`
	Status    usecase.RadiusStatus `json:"status"`
	Meters    int                  `json:"meters,omitempty"`
	Warning   *string              `json:"warning,omitempty"`
	CanSubmit bool                 `json:"can_submit"`
}

func NewRadiusValidationResponse(text string, result usecase.RadiusResult) RadiusValidationResponse {
	resp := RadiusValidationResponse{
		Text:      text,
		Status:    result.Status,
		Meters:    result.Meters,
		CanSubmit: result.CanSubmit(),
	}
	if result.ShowWarning() {
		warning := usecase.RadiusWarning
		resp.Warning = &warning
	}
	return resp
}
