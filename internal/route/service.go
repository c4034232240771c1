package route

import (
	"context"
	"log/slog"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/internal/events"
	"tripvault/pkg/domainerrors"
)

// ItineraryGetter loads the source itinerary for route generation.
type ItineraryGetter interface {
	Get(ctx context.Context, id string) (domain.Itinerary, error)
}

// Service derives routes from itineraries and exposes manual route CRUD.
type Service struct {
	repo        *Repository
	itineraries ItineraryGetter
	publisher   *events.Publisher
	logger      *slog.Logger
}

func NewService(repo *Repository, itineraries ItineraryGetter, publisher *events.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, itineraries: itineraries, publisher: publisher, logger: logger}
}

// CreateFromItinerary turns an itinerary's items into a route: items in
// chronological order, locations deduplicated by name keeping the first
// occurrence. Fewer than two distinct locations cannot make a route.
func (s *Service) CreateFromItinerary(ctx context.Context, itineraryID string) (domain.Route, error) {
	it, err := s.itineraries.Get(ctx, itineraryID)
	if err != nil {
		return domain.Route{}, err
	}

	items := make([]domain.ItineraryItem, len(it.Items))
	copy(items, it.Items)
	domain.SortItems(items)

	seen := make(map[string]struct{}, len(items))
	locations := make([]domain.RouteLocation, 0, len(items))
	for _, item := range items {
		name := item.Location.Name
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		locations = append(locations, domain.RouteLocation{
			Location: item.Location,
			Order:    len(locations),
			Notes:    item.Notes,
		})
	}
	if len(locations) < 2 {
		return domain.Route{}, domainerrors.Validation("locations",
			"itinerary needs at least 2 distinct locations to make a route")
	}

	created, err := s.repo.Create(ctx, domain.Route{
		Title:       it.Title,
		Locations:   locations,
		CreatedFrom: it.ID,
	})
	if err != nil {
		return domain.Route{}, err
	}
	s.publisher.Emit(ctx, "route.created", created.ID)
	return created, nil
}

// Create persists a manually assembled route.
func (s *Service) Create(ctx context.Context, route domain.Route) (domain.Route, error) {
	created, err := s.repo.Create(ctx, route)
	if err != nil {
		return domain.Route{}, err
	}
	s.publisher.Emit(ctx, "route.created", created.ID)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Route, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Route, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Emit(ctx, "route.deleted", id)
	return nil
}

// Export serializes the route to the same document form it is stored in,
// ready to hand to another instance.
func (s *Service) Export(ctx context.Context, id string) (string, error) {
	route, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	doc, err := docstore.Encode(route)
	if err != nil {
		return "", domainerrors.Newf(domainerrors.CodeInternal, "export route %s: %v", id, err)
	}
	return doc, nil
}
