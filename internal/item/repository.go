// Package item persists the standalone item documents and runs the
// orchestration that keeps each item's embedded copy inside its owning
// itinerary in step with the standalone document.
package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/pkg/domainerrors"
	"tripvault/pkg/platform/sentinel"
)

const entityType = "item"

// Repository stores items as standalone documents under "item:<id>". It knows
// nothing about the embedded copies; the service owns that synchronization.
type Repository struct {
	store  docstore.Store
	index  *docstore.Index
	logger *slog.Logger
}

func NewRepository(store docstore.Store, logger *slog.Logger) *Repository {
	return &Repository{
		store:  store,
		index:  docstore.NewIndex(store, entityType, logger),
		logger: logger,
	}
}

// Save persists the standalone document and registers the id.
func (r *Repository) Save(ctx context.Context, item domain.ItineraryItem) error {
	doc, err := docstore.Encode(item)
	if err != nil {
		return domainerrors.Newf(domainerrors.CodeInternal, "encode item %s: %v", item.ID, err)
	}
	if err := r.store.Save(ctx, docstore.DocKey(entityType, item.ID), doc); err != nil {
		return domainerrors.Newf(domainerrors.CodeStoreFailure, "save item %s: %v", item.ID, err)
	}
	r.index.Add(ctx, item.ID)
	return nil
}

// Get loads one standalone item document.
func (r *Repository) Get(ctx context.Context, id string) (domain.ItineraryItem, error) {
	doc, err := r.store.Load(ctx, docstore.DocKey(entityType, id))
	if errors.Is(err, sentinel.ErrNotFound) {
		return domain.ItineraryItem{}, domainerrors.Newf(domainerrors.CodeNotFound, "item %s not found", id)
	}
	if err != nil {
		return domain.ItineraryItem{}, domainerrors.Newf(domainerrors.CodeStoreFailure, "load item %s: %v", id, err)
	}
	item, err := docstore.Decode[domain.ItineraryItem](doc)
	if err != nil {
		return domain.ItineraryItem{}, domainerrors.Newf(domainerrors.CodeInternal, "decode item %s: %v", id, err)
	}
	return item, nil
}

// Delete removes the standalone document and its index entry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.DocKey(entityType, id)); err != nil {
		return domainerrors.Newf(domainerrors.CodeStoreFailure, "delete item %s: %v", id, err)
	}
	r.index.Remove(ctx, id)
	return nil
}

// GetAll returns every standalone item, sorted by date then primary time.
func (r *Repository) GetAll(ctx context.Context) ([]domain.ItineraryItem, error) {
	ids, err := r.index.IDs(ctx)
	if err != nil {
		return nil, domainerrors.Newf(domainerrors.CodeStoreFailure, "list items: %v", err)
	}
	items := docstore.LoadAll[domain.ItineraryItem](ctx, r.store, entityType, ids, r.logger)
	domain.SortItems(items)
	return items, nil
}

// GetByItinerary returns the itinerary's items in chronological order.
func (r *Repository) GetByItinerary(ctx context.Context, itineraryID string) ([]domain.ItineraryItem, error) {
	return r.filtered(ctx, func(item domain.ItineraryItem) bool {
		return item.ItineraryID == itineraryID
	})
}

// GetByLocation matches the location name exactly, case included.
func (r *Repository) GetByLocation(ctx context.Context, locationName string) ([]domain.ItineraryItem, error) {
	return r.filtered(ctx, func(item domain.ItineraryItem) bool {
		return item.Location.Name == locationName
	})
}

// GetByDateRange returns items dated within [from, to], both ends inclusive.
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]domain.ItineraryItem, error) {
	return r.filtered(ctx, func(item domain.ItineraryItem) bool {
		d := item.Date
		return !d.Before(from) && !d.After(to)
	})
}

func (r *Repository) filtered(ctx context.Context, keep func(domain.ItineraryItem) bool) ([]domain.ItineraryItem, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.ItineraryItem, 0, len(all))
	for _, item := range all {
		if keep(item) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// DeleteByItinerary purges every standalone document belonging to the
// itinerary, continuing past individual failures. It reports how many were
// removed and joins the errors for the caller to log.
func (r *Repository) DeleteByItinerary(ctx context.Context, itineraryID string) (int, error) {
	items, err := r.GetByItinerary(ctx, itineraryID)
	if err != nil {
		return 0, err
	}

	var errs []error
	purged := 0
	for _, item := range items {
		if err := r.store.Delete(ctx, docstore.DocKey(entityType, item.ID)); err != nil {
			errs = append(errs, fmt.Errorf("item %s: %w", item.ID, err))
			continue
		}
		r.index.Remove(ctx, item.ID)
		purged++
	}
	return purged, errors.Join(errs...)
}
