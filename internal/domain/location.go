package domain

import (
	"strings"

	"tripvault/pkg/domainerrors"
)

// Location is a named place, optionally geocoded. History grouping and route
// deduplication key on the name.
type Location struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// Validate checks name presence and coordinate ranges.
func (l Location) Validate() error {
	if isBlank(l.Name) {
		return domainerrors.Validation("location.name", "must not be blank")
	}
	if l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90) {
		return domainerrors.Validation("location.latitude", "must be within [-90, 90]")
	}
	if l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180) {
		return domainerrors.Validation("location.longitude", "must be within [-180, 180]")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
