package domain

import (
	"time"

	"tripvault/pkg/domainerrors"
)

// RouteLocation is one stop on a shareable route.
type RouteLocation struct {
	Location           Location `json:"location"`
	Order              int      `json:"order"`
	RecommendedMinutes *int     `json:"recommended_minutes,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

// Route is a shareable, de-duplicated sequence of locations, either derived
// from an itinerary's items or built manually.
type Route struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Locations []RouteLocation `json:"locations"`
	// CreatedFrom holds the source itinerary id, empty for manual routes.
	CreatedFrom string    `json:"created_from,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// Validate enforces the route invariant: at least two locations with
// distinct names.
func (r Route) Validate() error {
	if isBlank(r.Title) {
		return domainerrors.Validation("title", "must not be blank")
	}
	names := make(map[string]struct{}, len(r.Locations))
	for _, loc := range r.Locations {
		if err := loc.Location.Validate(); err != nil {
			return err
		}
		names[loc.Location.Name] = struct{}{}
	}
	if len(names) < 2 {
		return domainerrors.Validation("locations", "route needs at least 2 distinct locations")
	}
	return nil
}
