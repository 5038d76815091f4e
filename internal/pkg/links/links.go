// Package links builds the deep links the client hands to the OS URL
// launcher: maps directions, the dialer and place photos.
package links

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gym-finder/internal/domain"
)

const directionsBase = "https://www.google.com/maps/search/"

type Builder struct {
	photoBaseURL string
	apiKey       string
	maxWidth     int
}

// NewBuilder uses placesBaseURL (".../maps/api/place") for photo links.
func NewBuilder(placesBaseURL, apiKey string, maxWidth int) *Builder {
	return &Builder{
		photoBaseURL: strings.TrimRight(placesBaseURL, "/") + "/photo",
		apiKey:       apiKey,
		maxWidth:     maxWidth,
	}
}

// Directions opens the maps application at c.
func Directions(c domain.Coordinate) string {
	params := url.Values{}
	params.Set("api", "1")
	params.Set("query", fmt.Sprintf("%g,%g", c.Latitude, c.Longitude))
	return directionsBase + "?" + params.Encode()
}

// Dial returns a tel: link, or "" when there is no usable number.
func Dial(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || (r == '+' && b.Len() == 0) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.String() == "+" {
		return ""
	}
	return "tel:" + b.String()
}

func (b *Builder) Photo(ref string) string {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(b.maxWidth))
	params.Set("photoreference", ref)
	params.Set("key", b.apiKey)
	return b.photoBaseURL + "?" + params.Encode()
}

// Details builds the detail-view parameter from a copy of p.
func (b *Builder) Details(p domain.Place) domain.PlaceDetails {
	details := domain.PlaceDetails{
		Place:         p.Clone(),
		DirectionsURL: Directions(p.Coordinate),
	}
	if p.Phone != nil {
		if dial := Dial(*p.Phone); dial != "" {
			details.DialURL = &dial
		}
	}
	if p.PhotoRef != nil && *p.PhotoRef != "" {
		photo := b.Photo(*p.PhotoRef)
		details.PhotoURL = &photo
	}
	return details
}
