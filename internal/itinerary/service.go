package itinerary

import (
	"context"
	"log/slog"

	"tripvault/internal/domain"
	"tripvault/internal/events"
)

// ItemPurger deletes every standalone item document belonging to an
// itinerary. Implemented by the item repository.
type ItemPurger interface {
	DeleteByItinerary(ctx context.Context, itineraryID string) (int, error)
}

// Service wraps the repository with the cross-entity orchestration the store
// cannot do itself: cascading item cleanup on delete and entity-change
// events.
type Service struct {
	repo      *Repository
	purger    ItemPurger
	publisher *events.Publisher
	logger    *slog.Logger
}

func NewService(repo *Repository, purger ItemPurger, publisher *events.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, purger: purger, publisher: publisher, logger: logger}
}

func (s *Service) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	created, err := s.repo.Create(ctx, it)
	if err != nil {
		return domain.Itinerary{}, err
	}
	s.publisher.Emit(ctx, "itinerary.created", created.ID)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Itinerary, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Itinerary, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Itinerary, error) {
	return s.repo.Search(ctx, query)
}

func (s *Service) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	updated, err := s.repo.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, err
	}
	s.publisher.Emit(ctx, "itinerary.updated", updated.ID)
	return updated, nil
}

// Delete removes the itinerary and then purges its standalone item documents.
// The purge is best-effort: orphaned item documents are unreachable through
// the API once the itinerary is gone, so a failed cleanup is logged rather
// than surfaced.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	purged, err := s.purger.DeleteByItinerary(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "item cascade incomplete", "itinerary_id", id, "purged", purged, "error", err)
	}

	s.publisher.Emit(ctx, "itinerary.deleted", id)
	return nil
}
