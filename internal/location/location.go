// Package location defines the port to an external place search provider.
// The core never calls the network itself; a provider adapter is plugged in
// at the edge and the stored Location carries whatever it returned.
package location

import (
	"context"

	"tripvault/internal/domain"
)

// Searcher finds places by free-text name and resolves provider place ids to
// full location records.
type Searcher interface {
	SearchByName(ctx context.Context, query string) ([]domain.Location, error)
	PlaceDetails(ctx context.Context, placeID string) (domain.Location, error)
}
