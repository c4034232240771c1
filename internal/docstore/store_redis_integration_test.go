//go:build integration

package docstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/pkg/platform/sentinel"
	"tripvault/pkg/testutil"
	"tripvault/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *docstore.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, &RedisStoreSuite{store: docstore.NewRedisStore(containers.StartRedis(t))})
}

func (s *RedisStoreSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RedisStoreSuite) TestSaveLoadDelete() {
	key := docstore.DocKey("itinerary", "redis-roundtrip")
	s.Require().NoError(s.store.Save(s.ctx, key, `{"id":"redis-roundtrip"}`))

	doc, err := s.store.Load(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(`{"id":"redis-roundtrip"}`, doc)

	s.Require().NoError(s.store.Delete(s.ctx, key))
	_, err = s.store.Load(s.ctx, key)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestDeleteAbsentIsNoop() {
	s.NoError(s.store.Delete(s.ctx, docstore.DocKey("itinerary", "never-existed")))
}

func (s *RedisStoreSuite) TestIndexLifecycleAgainstRedis() {
	index := docstore.NewIndex(s.store, "redis-index-type", testutil.Logger())
	index.Add(s.ctx, "a")
	index.Add(s.ctx, "b")
	index.Add(s.ctx, "a") // duplicate collapses

	ids, err := index.IDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, ids)

	index.Remove(s.ctx, "a")
	ids, err = index.IDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"b"}, ids)
}

func (s *RedisStoreSuite) TestDomainDocumentAgainstRedis() {
	it := domain.Itinerary{ID: "redis-doc", Title: "Backed by Redis"}
	doc, err := docstore.Encode(it)
	s.Require().NoError(err)

	key := docstore.DocKey("itinerary", it.ID)
	s.Require().NoError(s.store.Save(s.ctx, key, doc))

	loadedDoc, err := s.store.Load(s.ctx, key)
	s.Require().NoError(err)
	loaded, err := docstore.Decode[domain.Itinerary](loadedDoc)
	s.Require().NoError(err)
	s.Equal(it.Title, loaded.Title)
}
