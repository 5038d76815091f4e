package domain

import (
	"encoding/json"
	"fmt"
)

type OpenStatus string

const (
	OpenNow           OpenStatus = "OpenNow"
	Closed            OpenStatus = "Closed"
	OpenStatusUnknown OpenStatus = "Unknown"
)

// Rating is a provider rating or "unrated". The zero value is unrated.
type Rating struct {
	Value float64
	Rated bool
}

func RatingOf(v float64) Rating {
	return Rating{Value: v, Rated: true}
}

func Unrated() Rating {
	return Rating{}
}

func (r Rating) String() string {
	if !r.Rated {
		return "unrated"
	}
	return fmt.Sprintf("%.1f", r.Value)
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Rated {
		return json.Marshal("unrated")
	}
	return json.Marshal(r.Value)
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*r = RatingOf(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rating must be a number or \"unrated\": %w", err)
	}
	if s != "unrated" {
		return fmt.Errorf("unknown rating %q", s)
	}
	*r = Unrated()
	return nil
}

// DayHours is one line of a venue's weekly schedule.
type DayHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Place is a normalized venue. Places are replaced, never patched.
type Place struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Rating     Rating     `json:"rating"`
	OpenStatus OpenStatus `json:"open_status"`
	Coordinate Coordinate `json:"coordinate"`
	Phone      *string    `json:"phone,omitempty"`
	PhotoRef   *string    `json:"photo_ref,omitempty"`
	Hours      []DayHours `json:"hours,omitempty"`
}

// Clone returns a deep copy that shares nothing with p.
func (p Place) Clone() Place {
	cp := p
	if p.Phone != nil {
		phone := *p.Phone
		cp.Phone = &phone
	}
	if p.PhotoRef != nil {
		ref := *p.PhotoRef
		cp.PhotoRef = &ref
	}
	if p.Hours != nil {
		cp.Hours = append([]DayHours(nil), p.Hours...)
	}
	return cp
}

// PlaceDetails is the navigation parameter of the detail view: a copy of
// the selected place plus the deep links the view can launch.
type PlaceDetails struct {
	Place         Place   `json:"place"`
	DirectionsURL string  `json:"directions_url"`
	DialURL       *string `json:"dial_url,omitempty"`
	PhotoURL      *string `json:"photo_url,omitempty"`
}
