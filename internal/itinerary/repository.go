// Package itinerary persists trip aggregates and orchestrates the cascade
// that keeps standalone item documents in step when a trip goes away.
package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/pkg/domainerrors"
	"tripvault/pkg/platform/sentinel"
)

const entityType = "itinerary"

// Repository stores itineraries as JSON documents under "itinerary:<id>" and
// keeps the enumeration index current.
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

// Create validates and persists a new itinerary, assigning an id when the
// caller did not.
func (r *Repository) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	it.CreatedAt = now
	it.ModifiedAt = now
	if it.Items == nil {
		it.Items = []domain.ItineraryItem{}
	}
	if err := it.Validate(); err != nil {
		return domain.Itinerary{}, err
	}

	if err := r.save(ctx, it); err != nil {
		return domain.Itinerary{}, err
	}
	r.index.Add(ctx, it.ID)
	return it, nil
}

// Get loads one itinerary.
func (r *Repository) Get(ctx context.Context, id string) (domain.Itinerary, error) {
	doc, err := r.store.Load(ctx, docstore.DocKey(entityType, id))
	if errors.Is(err, sentinel.ErrNotFound) {
		return domain.Itinerary{}, domainerrors.Newf(domainerrors.CodeNotFound, "itinerary %s not found", id)
	}
	if err != nil {
		return domain.Itinerary{}, domainerrors.Newf(domainerrors.CodeStoreFailure, "load itinerary %s: %v", id, err)
	}
	it, err := docstore.Decode[domain.Itinerary](doc)
	if err != nil {
		return domain.Itinerary{}, domainerrors.Newf(domainerrors.CodeInternal, "decode itinerary %s: %v", id, err)
	}
	return it, nil
}

// GetAll returns every itinerary, newest first. Individually unreadable
// documents are skipped.
func (r *Repository) GetAll(ctx context.Context) ([]domain.Itinerary, error) {
	ids, err := r.index.IDs(ctx)
	if err != nil {
		return nil, domainerrors.Newf(domainerrors.CodeStoreFailure, "list itineraries: %v", err)
	}
	itineraries := docstore.LoadAll[domain.Itinerary](ctx, r.store, entityType, ids, r.logger)
	sort.SliceStable(itineraries, func(a, b int) bool {
		return itineraries[a].CreatedAt.After(itineraries[b].CreatedAt)
	})
	return itineraries, nil
}

// Update replaces an existing itinerary, preserving its creation time.
func (r *Repository) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	existing, err := r.Get(ctx, it.ID)
	if err != nil {
		return domain.Itinerary{}, err
	}
	it.CreatedAt = existing.CreatedAt
	it.ModifiedAt = time.Now().UTC()
	if it.Items == nil {
		it.Items = []domain.ItineraryItem{}
	}
	if err := it.Validate(); err != nil {
		return domain.Itinerary{}, err
	}

	if err := r.save(ctx, it); err != nil {
		return domain.Itinerary{}, err
	}
	r.index.Add(ctx, it.ID) // heals a stale index from an earlier swallowed write
	return it, nil
}

// Delete removes the document and its index entry. Item cascade is the
// service's job.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.DocKey(entityType, id)); err != nil {
		return domainerrors.Newf(domainerrors.CodeStoreFailure, "delete itinerary %s: %v", id, err)
	}
	r.index.Remove(ctx, id)
	return nil
}

// Search returns itineraries whose title, description, item location names or
// item activities contain the query, case-insensitively. A blank query
// matches everything.
func (r *Repository) Search(ctx context.Context, query string) ([]domain.Itinerary, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}
	needle := strings.ToLower(query)

	matched := make([]domain.Itinerary, 0, len(all))
	for _, it := range all {
		if matchesQuery(it, needle) {
			matched = append(matched, it)
		}
	}
	return matched, nil
}

func matchesQuery(it domain.Itinerary, needle string) bool {
	if strings.Contains(strings.ToLower(it.Title), needle) ||
		strings.Contains(strings.ToLower(it.Description), needle) {
		return true
	}
	for _, item := range it.Items {
		if strings.Contains(strings.ToLower(item.Location.Name), needle) ||
			strings.Contains(strings.ToLower(item.Activity), needle) {
			return true
		}
	}
	return false
}

func (r *Repository) save(ctx context.Context, it domain.Itinerary) error {
	doc, err := docstore.Encode(it)
	if err != nil {
		return domainerrors.Newf(domainerrors.CodeInternal, "encode itinerary %s: %v", it.ID, err)
	}
	if err := r.store.Save(ctx, docstore.DocKey(entityType, it.ID), doc); err != nil {
		return domainerrors.Newf(domainerrors.CodeStoreFailure, "save itinerary %s: %v", it.ID, err)
	}
	return nil
}
