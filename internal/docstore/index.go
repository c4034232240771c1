package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"tripvault/pkg/platform/sentinel"
	pkgstrings "tripvault/pkg/platform/strings"
)

// enumerationParallelism bounds concurrent document loads during a full scan.
const enumerationParallelism = 8

// Index maintains the ordered, duplicate-free id list for one entity type
// under "<type>:index". The store has no scan operation, so this list is the
// only way to enumerate documents of a type.
//
// Index writes are best-effort by policy: the primary document write has
// already succeeded by the time the index is touched, so an index-write
// failure is logged and swallowed rather than failing the caller-visible
// operation. The worst case is stale enumeration until the next successful
// update.
type Index struct {
	store  Store
	key    string
	logger *slog.Logger
}

// NewIndex builds the index handle for an entity type.
func NewIndex(store Store, entityType string, logger *slog.Logger) *Index {
	return &Index{store: store, key: IndexKey(entityType), logger: logger}
}

// IDs returns the current id list. A missing index reads as empty.
func (ix *Index) IDs(ctx context.Context) ([]string, error) {
	doc, err := ix.store.Load(ctx, ix.key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", ix.key, err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(doc), &ids); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", ix.key, err)
	}
	return ids, nil
}

// Apply reads the id list, runs transform over it, dedupes the result keeping
// first-occurrence order, and writes it back. Every failure along the way is
// logged and swallowed — never surfaced to the caller.
func (ix *Index) Apply(ctx context.Context, transform func(ids []string) []string) {
	ids, err := ix.IDs(ctx)
	if err != nil {
		ix.logger.WarnContext(ctx, "index read failed, skipping update", "key", ix.key, "error", err)
		return
	}

	updated := pkgstrings.Dedupe(transform(ids))

	doc, err := json.Marshal(updated)
	if err != nil {
		ix.logger.WarnContext(ctx, "index encode failed, skipping update", "key", ix.key, "error", err)
		return
	}
	if err := ix.store.Save(ctx, ix.key, string(doc)); err != nil {
		ix.logger.WarnContext(ctx, "index write failed, enumeration may be stale", "key", ix.key, "error", err)
	}
}

// Add appends an id to the list.
func (ix *Index) Add(ctx context.Context, id string) {
	ix.Apply(ctx, func(ids []string) []string {
		return append(ids, id)
	})
}

// Remove drops an id from the list.
func (ix *Index) Remove(ctx context.Context, id string) {
	ix.Apply(ctx, func(ids []string) []string {
		kept := ids[:0]
		for _, existing := range ids {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		return kept
	})
}

// LoadAll loads and decodes the documents for the given ids, preserving id
// order. Individual load or decode failures are logged and skipped; partial
// results are acceptable by contract.
func LoadAll[T any](ctx context.Context, store Store, entityType string, ids []string, logger *slog.Logger) []T {
	results := make([]*T, len(ids))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enumerationParallelism)

	for i, id := range ids {
		g.Go(func() error {
			doc, err := store.Load(ctx, DocKey(entityType, id))
			if err != nil {
				logger.WarnContext(ctx, "skipping unreadable document", "type", entityType, "id", id, "error", err)
				return nil
			}
			entity, err := Decode[T](doc)
			if err != nil {
				logger.WarnContext(ctx, "skipping undecodable document", "type", entityType, "id", id, "error", err)
				return nil
			}
			mu.Lock()
			results[i] = &entity
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures are skipped above

	loaded := make([]T, 0, len(ids))
	for _, entity := range results {
		if entity != nil {
			loaded = append(loaded, *entity)
		}
	}
	return loaded
}
