package domain

// Coordinate is a WGS84 point. Captured once per search and never mutated.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// Region is a map viewport: a center plus the visible span in degrees.
type Region struct {
	Center         Coordinate `json:"center"`
	LatitudeDelta  float64    `json:"latitude_delta"`
	LongitudeDelta float64    `json:"longitude_delta"`
}

const (
	overviewDelta = 0.05
	focusDelta    = 0.02
)

// DefaultRegion is shown while the user's coordinate is unknown.
var DefaultRegion = Region{
	Center:         Coordinate{Latitude: 37.7749, Longitude: -122.4194},
	LatitudeDelta:  overviewDelta,
	LongitudeDelta: overviewDelta,
}

// OverviewRegion frames the area around the user.
func OverviewRegion(c Coordinate) Region {
	return Region{Center: c, LatitudeDelta: overviewDelta, LongitudeDelta: overviewDelta}
}

// FocusRegion zooms onto a single place.
func FocusRegion(c Coordinate) Region {
	return Region{Center: c, LatitudeDelta: focusDelta, LongitudeDelta: focusDelta}
}
