// Package route stores shareable routes and derives them from itineraries.
package route

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/pkg/domainerrors"
	"tripvault/pkg/platform/sentinel"
)

const entityType = "route"

// Repository stores routes as JSON documents under "route:<id>".
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

// Create validates and persists a route.
func (r *Repository) Create(ctx context.Context, route domain.Route) (domain.Route, error) {
	if route.ID == "" {
		route.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	route.CreatedAt = now
	route.ModifiedAt = now
	if err := route.Validate(); err != nil {
		return domain.Route{}, err
	}

	doc, err := docstore.Encode(route)
	if err != nil {
		return domain.Route{}, domainerrors.Newf(domainerrors.CodeInternal, "encode route %s: %v", route.ID, err)
	}
	if err := r.store.Save(ctx, docstore.DocKey(entityType, route.ID), doc); err != nil {
		return domain.Route{}, domainerrors.Newf(domainerrors.CodeStoreFailure, "save route %s: %v", route.ID, err)
	}
	r.index.Add(ctx, route.ID)
	return route, nil
}

// Get loads one route.
func (r *Repository) Get(ctx context.Context, id string) (domain.Route, error) {
	doc, err := r.store.Load(ctx, docstore.DocKey(entityType, id))
	if errors.Is(err, sentinel.ErrNotFound) {
		return domain.Route{}, domainerrors.Newf(domainerrors.CodeNotFound, "route %s not found", id)
	}
	if err != nil {
		return domain.Route{}, domainerrors.Newf(domainerrors.CodeStoreFailure, "load route %s: %v", id, err)
	}
	route, err := docstore.Decode[domain.Route](doc)
	if err != nil {
		return domain.Route{}, domainerrors.Newf(domainerrors.CodeInternal, "decode route %s: %v", id, err)
	}
	return route, nil
}

// GetAll returns every route, newest first.
func (r *Repository) GetAll(ctx context.Context) ([]domain.Route, error) {
	ids, err := r.index.IDs(ctx)
	if err != nil {
		return nil, domainerrors.Newf(domainerrors.CodeStoreFailure, "list routes: %v", err)
	}
	routes := docstore.LoadAll[domain.Route](ctx, r.store, entityType, ids, r.logger)
	sort.SliceStable(routes, func(a, b int) bool {
		return routes[a].CreatedAt.After(routes[b].CreatedAt)
	})
	return routes, nil
}

// Delete removes the document and its index entry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.DocKey(entityType, id)); err != nil {
		return domainerrors.Newf(domainerrors.CodeStoreFailure, "delete route %s: %v", id, err)
	}
	r.index.Remove(ctx, id)
	return nil
}
