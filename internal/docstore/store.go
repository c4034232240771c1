// Package docstore is the opaque key→string document store the repositories
// persist into, together with the hand-rolled id-list indexes that substitute
// for the store's missing scan capability.
//
// The store contract is deliberately small: get, put, and delete by key. No
// queries, no multi-key transactions. Every consistency guarantee beyond
// single-document atomicity is the responsibility of the calling service.
package docstore

import "context"

// Store is an async key→string blob store.
//
// Error Contract:
// - Load returns an error wrapping sentinel.ErrNotFound when the key is absent
// - Delete of an absent key is a no-op and returns nil
// - All other errors are infrastructure failures, wrapped with context
type Store interface {
	Save(ctx context.Context, key, value string) error
	Load(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// DocKey builds the document key for an entity. Types in use: "itinerary",
// "item", "route"; drafts live under "draft_<type>" and have no index.
func DocKey(entityType, id string) string {
	return entityType + ":" + id
}

// IndexKey returns the well-known key holding the id list for a type.
func IndexKey(entityType string) string {
	return entityType + ":index"
}
