package googleplaces

// Wire shapes of the Nearby Search JSON response. Optional fields are
// pointers so normalization can tell "absent" from zero values.

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	// StatusOverQueryLimit is also reported by QuotaGuard when the local quota is spent.
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
)

type nearbySearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID      string        `json:"place_id"`
	Name         string        `json:"name"`
	Vicinity     *string       `json:"vicinity,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	OpeningHours *openingHours `json:"opening_hours,omitempty"`
	Geometry     geometry      `json:"geometry"`
	Photos       []photo       `json:"photos,omitempty"`
}

type openingHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type photo struct {
	PhotoReference string `json:"photo_reference"`
}
