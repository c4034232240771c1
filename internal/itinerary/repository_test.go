package itinerary

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/pkg/domainerrors"
	"tripvault/pkg/testutil"
)

type RepositorySuite struct {
	suite.Suite
	ctx   context.Context
	store *docstore.InMemoryStore
	repo  *Repository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = docstore.NewInMemoryStore()
	s.repo = NewRepository(s.store, testutil.Logger())
}

func (s *RepositorySuite) create(title string) domain.Itinerary {
	created, err := s.repo.Create(s.ctx, domain.Itinerary{Title: title})
	s.Require().NoError(err)
	return created
}

func (s *RepositorySuite) TestCreateAssignsIDAndTimestamps() {
	created := s.create("Kyoto Spring")

	s.NotEmpty(created.ID)
	s.False(created.CreatedAt.IsZero())
	s.Equal(created.CreatedAt, created.ModifiedAt)

	loaded, err := s.repo.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Kyoto Spring", loaded.Title)
	s.NotNil(loaded.Items)
}

func (s *RepositorySuite) TestCreateRejectsInvalid() {
	_, err := s.repo.Create(s.ctx, domain.Itinerary{Title: "   "})
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodeValidation))
}

func (s *RepositorySuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, "nope")
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *RepositorySuite) TestGetAllNewestFirst() {
	first := s.create("first")
	time.Sleep(2 * time.Millisecond)
	second := s.create("second")

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(second.ID, all[0].ID)
	s.Equal(first.ID, all[1].ID)
}

func (s *RepositorySuite) TestUpdateMissing() {
	_, err := s.repo.Update(s.ctx, domain.Itinerary{ID: "ghost", Title: "x"})
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *RepositorySuite) TestUpdatePreservesCreatedAt() {
	created := s.create("before")

	created.Title = "after"
	updated, err := s.repo.Update(s.ctx, created)
	s.Require().NoError(err)
	s.Equal("after", updated.Title)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.False(updated.ModifiedAt.Before(created.ModifiedAt))
}

func (s *RepositorySuite) TestDeleteRemovesDocAndIndexEntry() {
	created := s.create("doomed")
	s.Require().NoError(s.repo.Delete(s.ctx, created.ID))

	_, err := s.repo.Get(s.ctx, created.ID)
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *RepositorySuite) TestSearchMatrix() {
	tokyo, err := s.repo.Create(s.ctx, domain.Itinerary{
		Title:       "Tokyo Food Tour",
		Description: "ramen crawl",
		Items: []domain.ItineraryItem{{
			ID:          "i1",
			ItineraryID: "",
			Date:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			Location:    domain.Location{Name: "Shibuya Crossing"},
			Activity:    "people watching",
		}},
	})
	s.Require().NoError(err)
	s.create("Lisbon Weekend")

	cases := []struct {
		query string
		want  int
	}{
		{"tokyo", 1},        // title, case-insensitive
		{"RAMEN", 1},        // description
		{"shibuya", 1},      // item location name
		{"people watch", 1}, // item activity substring
		{"", 2},             // blank matches all
		{"   ", 2},          // whitespace-only matches all
		{"antarctica", 0},
	}
	for _, tc := range cases {
		got, err := s.repo.Search(s.ctx, tc.query)
		s.Require().NoError(err, tc.query)
		s.Len(got, tc.want, "query %q", tc.query)
		if tc.want == 1 {
			s.Equal(tokyo.ID, got[0].ID, "query %q", tc.query)
		}
	}
}

func (s *RepositorySuite) TestGetAllSurvivesBrokenDocument() {
	healthy := s.create("healthy")
	s.Require().NoError(s.store.Save(s.ctx, docstore.DocKey("itinerary", "broken"), "{not json"))
	// force the broken id into the index
	docstore.NewIndex(s.store, "itinerary", testutil.Logger()).Add(s.ctx, "broken")

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(healthy.ID, all[0].ID)
}
