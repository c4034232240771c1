// Package draft stores at most one in-progress form per draft type, with a
// seven-day retention window enforced lazily at read time.
package draft

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/pkg/domainerrors"
	"tripvault/pkg/platform/sentinel"
)

// Repository persists drafts under "draft_<type>". Drafts have no index:
// there is exactly one well-known key per type.
type Repository struct {
	store  docstore.Store
	logger *slog.Logger
}

func NewRepository(store docstore.Store, logger *slog.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

func key(draftType domain.DraftType) string {
	return "draft_" + string(draftType)
}

// Save overwrites the draft for the type with fresh identity and timestamps.
// Saving restarts the retention window.
func (r *Repository) Save(ctx context.Context, draftType domain.DraftType, data map[string]string) (domain.Draft, error) {
	now := time.Now().UTC()
	draft := domain.Draft{
		ID:         uuid.NewString(),
		Type:       draftType,
		Data:       data,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := draft.Validate(); err != nil {
		return domain.Draft{}, err
	}

	doc, err := docstore.Encode(draft)
	if err != nil {
		return domain.Draft{}, domainerrors.Newf(domainerrors.CodeInternal, "encode draft %s: %v", draftType, err)
	}
	if err := r.store.Save(ctx, key(draftType), doc); err != nil {
		return domain.Draft{}, domainerrors.Newf(domainerrors.CodeStoreFailure, "save draft %s: %v", draftType, err)
	}
	return draft, nil
}

// Get returns the live draft for the type, or nil when none exists. A draft
// past its retention window at now is deleted on the spot and reported
// absent; expiry never waits for a background sweep.
func (r *Repository) Get(ctx context.Context, draftType domain.DraftType, now time.Time) (*domain.Draft, error) {
	doc, err := r.store.Load(ctx, key(draftType))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.Newf(domainerrors.CodeStoreFailure, "load draft %s: %v", draftType, err)
	}

	draft, err := docstore.Decode[domain.Draft](doc)
	if err != nil {
		return nil, domainerrors.Newf(domainerrors.CodeInternal, "decode draft %s: %v", draftType, err)
	}
	if draft.Expired(now) {
		if err := r.store.Delete(ctx, key(draftType)); err != nil {
			r.logger.WarnContext(ctx, "expired draft cleanup failed", "type", draftType, "error", err)
		}
		return nil, nil
	}
	return &draft, nil
}

// Delete discards the draft for the type. Absent drafts are fine.
func (r *Repository) Delete(ctx context.Context, draftType domain.DraftType) error {
	if err := r.store.Delete(ctx, key(draftType)); err != nil {
		return domainerrors.Newf(domainerrors.CodeStoreFailure, "delete draft %s: %v", draftType, err)
	}
	return nil
}

// DeleteExpired sweeps every draft type through the lazy read path and
// reports how many expired drafts it cleared.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	cleared := 0
	for _, draftType := range domain.DraftTypes {
		before, err := r.peek(ctx, draftType)
		if err != nil {
			return cleared, err
		}
		if before == nil {
			continue
		}
		if before.Expired(now) {
			if _, err := r.Get(ctx, draftType, now); err != nil {
				return cleared, err
			}
			cleared++
		}
	}
	return cleared, nil
}

// peek loads without triggering expiry.
func (r *Repository) peek(ctx context.Context, draftType domain.DraftType) (*domain.Draft, error) {
	doc, err := r.store.Load(ctx, key(draftType))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.Newf(domainerrors.CodeStoreFailure, "load draft %s: %v", draftType, err)
	}
	draft, err := docstore.Decode[domain.Draft](doc)
	if err != nil {
		return nil, domainerrors.Newf(domainerrors.CodeInternal, "decode draft %s: %v", draftType, err)
	}
	return &draft, nil
}
