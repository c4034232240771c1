package item

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tripvault/internal/domain"
	"tripvault/internal/events"
	"tripvault/internal/hashtag"
	"tripvault/pkg/domainerrors"
)

// ItineraryStore is the slice of the itinerary repository the item service
// needs to maintain the embedded copies.
type ItineraryStore interface {
	Get(ctx context.Context, id string) (domain.Itinerary, error)
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
}

// BatchResult reports how a multi-id operation went. Failed holds the ids
// that did not go through.
type BatchResult struct {
	Requested int      `json:"requested"`
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed,omitempty"`
}

// Service owns the dual-write protocol: every mutation writes the standalone
// document first, then re-fetches the owning itinerary and rewrites the
// embedded copy. The store has no multi-key transactions, so a failure after
// the first write leaves the two representations diverged; the service
// reports that as a partial failure instead of pretending the mutation
// failed cleanly.
type Service struct {
	repo        *Repository
	itineraries ItineraryStore
	publisher   *events.Publisher
	logger      *slog.Logger
}

func NewService(repo *Repository, itineraries ItineraryStore, publisher *events.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, itineraries: itineraries, publisher: publisher, logger: logger}
}

// AddItem creates an item on an itinerary. Hashtags are extracted from the
// notes; any caller-supplied tags are discarded.
func (s *Service) AddItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	owner, err := s.itineraries.Get(ctx, item.ItineraryID)
	if err != nil {
		return domain.ItineraryItem{}, err
	}

	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = now
	item.ModifiedAt = now
	item.Hashtags = hashtag.Extract(item.Notes, now)
	if err := item.Validate(); err != nil {
		return domain.ItineraryItem{}, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return domain.ItineraryItem{}, err
	}

	owner.Items = append(owner.Items, item)
	if _, err := s.itineraries.Update(ctx, owner); err != nil {
		return item, s.diverged(ctx, item.ID, "embed new item", err)
	}
	s.publisher.Emit(ctx, "item.created", item.ID)
	return item, nil
}

// UpdateItem rewrites an existing item. The itinerary it belongs to and its
// creation time are immutable; hashtags are re-extracted from the new notes.
func (s *Service) UpdateItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	existing, err := s.repo.Get(ctx, item.ID)
	if err != nil {
		return domain.ItineraryItem{}, err
	}

	now := time.Now().UTC()
	item.ItineraryID = existing.ItineraryID
	item.CreatedAt = existing.CreatedAt
	item.ModifiedAt = now
	item.Hashtags = hashtag.Extract(item.Notes, now)
	if err := item.Validate(); err != nil {
		return domain.ItineraryItem{}, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return domain.ItineraryItem{}, err
	}
	if err := s.syncEmbedded(ctx, item); err != nil {
		return item, err
	}
	s.publisher.Emit(ctx, "item.updated", item.ID)
	return item, nil
}

// DeleteItem removes the standalone document and the embedded copy.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	owner, err := s.itineraries.Get(ctx, existing.ItineraryID)
	if err != nil {
		if domainerrors.Is(err, domainerrors.CodeNotFound) {
			// owner already gone; the standalone doc was the orphan
			return nil
		}
		return s.diverged(ctx, id, "load owner for removal", err)
	}
	if owner.RemoveItem(id) {
		if _, err := s.itineraries.Update(ctx, owner); err != nil {
			return s.diverged(ctx, id, "remove embedded item", err)
		}
	}
	s.publisher.Emit(ctx, "item.deleted", id)
	return nil
}

// GetItem loads one item.
func (s *Service) GetItem(ctx context.Context, id string) (domain.ItineraryItem, error) {
	return s.repo.Get(ctx, id)
}

// GetItemsByItinerary returns the itinerary's items in chronological order.
func (s *Service) GetItemsByItinerary(ctx context.Context, itineraryID string) ([]domain.ItineraryItem, error) {
	return s.repo.GetByItinerary(ctx, itineraryID)
}

// GetItemsByLocation matches the location name exactly, case included.
func (s *Service) GetItemsByLocation(ctx context.Context, locationName string) ([]domain.ItineraryItem, error) {
	return s.repo.GetByLocation(ctx, locationName)
}

// GetItemsByDateRange returns items dated within [from, to] inclusive.
func (s *Service) GetItemsByDateRange(ctx context.Context, from, to time.Time) ([]domain.ItineraryItem, error) {
	return s.repo.GetByDateRange(ctx, from, to)
}

// ToggleCompletion flips the completion flag, stamping ts when completing and
// clearing the stamp when reopening.
func (s *Service) ToggleCompletion(ctx context.Context, id string, ts time.Time) (domain.ItineraryItem, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.ItineraryItem{}, err
	}
	return s.setCompletion(ctx, existing, !existing.IsCompleted, ts)
}

// Progress reports the completed share of an itinerary's items as a
// percentage. An itinerary with no items is 0% done, not undefined.
func (s *Service) Progress(ctx context.Context, itineraryID string) (float64, error) {
	items, err := s.repo.GetByItinerary(ctx, itineraryID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}
	completed := 0
	for _, item := range items {
		if item.IsCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(items)) * 100, nil
}

// BatchDelete deletes each id, continuing past failures.
func (s *Service) BatchDelete(ctx context.Context, ids []string) (BatchResult, error) {
	return s.batch(ids, func(id string) error {
		return s.DeleteItem(ctx, id)
	})
}

// BatchComplete marks each id completed at ts. Already-completed items count
// as successes.
func (s *Service) BatchComplete(ctx context.Context, ids []string, ts time.Time) (BatchResult, error) {
	return s.batch(ids, func(id string) error {
		existing, err := s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing.IsCompleted {
			return nil
		}
		_, err = s.setCompletion(ctx, existing, true, ts)
		return err
	})
}

func (s *Service) setCompletion(ctx context.Context, item domain.ItineraryItem, completed bool, ts time.Time) (domain.ItineraryItem, error) {
	item.IsCompleted = completed
	if completed {
		item.CompletedAt = &ts
	} else {
		item.CompletedAt = nil
	}
	item.ModifiedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, item); err != nil {
		return domain.ItineraryItem{}, err
	}
	if err := s.syncEmbedded(ctx, item); err != nil {
		return item, err
	}
	s.publisher.Emit(ctx, "item.completion_toggled", item.ID)
	return item, nil
}

// syncEmbedded rewrites the embedded copy inside the owning itinerary. An
// embedded copy missing after an earlier divergence is healed by appending.
func (s *Service) syncEmbedded(ctx context.Context, item domain.ItineraryItem) error {
	owner, err := s.itineraries.Get(ctx, item.ItineraryID)
	if err != nil {
		return s.diverged(ctx, item.ID, "load owner for sync", err)
	}
	if !owner.ReplaceItem(item) {
		owner.Items = append(owner.Items, item)
	}
	if _, err := s.itineraries.Update(ctx, owner); err != nil {
		return s.diverged(ctx, item.ID, "rewrite embedded item", err)
	}
	return nil
}

// diverged records that the standalone write stuck but the embedded copy
// could not be brought in step, and surfaces that as a partial failure.
func (s *Service) diverged(ctx context.Context, itemID, step string, err error) error {
	s.logger.ErrorContext(ctx, "item representations diverged", "item_id", itemID, "step", step, "error", err)
	return domainerrors.Newf(domainerrors.CodePartialFailure,
		"item %s saved but itinerary sync failed (%s): %v", itemID, step, err)
}

func (s *Service) batch(ids []string, op func(id string) error) (BatchResult, error) {
	result := BatchResult{Requested: len(ids)}
	var firstErr error
	for _, id := range ids {
		if err := op(id); err != nil {
			result.Failed = append(result.Failed, id)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.Succeeded++
	}

	switch {
	case len(result.Failed) == 0:
		return result, nil
	case result.Succeeded == 0 && len(ids) > 0:
		return result, firstErr
	default:
		return result, domainerrors.Newf(domainerrors.CodePartialFailure,
			"%d of %d items failed", len(result.Failed), result.Requested)
	}
}
