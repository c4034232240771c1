package item

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
	ctx  context.Context
	repo *Repository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewRepository(docstore.NewInMemoryStore(), testutil.Logger())
}

func (s *RepositorySuite) save(id, itineraryID, locationName string, date time.Time) domain.ItineraryItem {
	item := domain.ItineraryItem{
		ID:          id,
		ItineraryID: itineraryID,
		Date:        date,
		Location:    domain.Location{Name: locationName},
		Activity:    "visit " + locationName,
	}
	s.Require().NoError(s.repo.Save(s.ctx, item))
	return item
}

func day(d int) time.Time {
	return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
}

func (s *RepositorySuite) TestSaveAndGet() {
	saved := s.save("i1", "trip", "Alfama", day(1))

	loaded, err := s.repo.Get(s.ctx, "i1")
	s.Require().NoError(err)
	s.Equal(saved.Location.Name, loaded.Location.Name)
}

func (s *RepositorySuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, "nope")
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *RepositorySuite) TestGetByItinerarySorted() {
	s.save("later", "trip", "B", day(3))
	s.save("earlier", "trip", "A", day(1))
	s.save("other", "another-trip", "C", day(2))

	items, err := s.repo.GetByItinerary(s.ctx, "trip")
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("earlier", items[0].ID)
	s.Equal("later", items[1].ID)
}

func (s *RepositorySuite) TestGetByLocationCaseSensitiveExact() {
	s.save("i1", "trip", "Belém", day(1))
	s.save("i2", "trip", "belém", day(2))
	s.save("i3", "trip", "Belém Tower", day(3))

	items, err := s.repo.GetByLocation(s.ctx, "Belém")
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("i1", items[0].ID)
}

func (s *RepositorySuite) TestGetByDateRangeInclusive() {
	s.save("before", "trip", "A", day(1))
	s.save("start", "trip", "B", day(2))
	s.save("mid", "trip", "C", day(3))
	s.save("end", "trip", "D", day(4))
	s.save("after", "trip", "E", day(5))

	items, err := s.repo.GetByDateRange(s.ctx, day(2), day(4))
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal("start", items[0].ID)
	s.Equal("end", items[2].ID)
}

func (s *RepositorySuite) TestDeleteByItinerary() {
	s.save("i1", "trip", "A", day(1))
	s.save("i2", "trip", "B", day(2))
	s.save("keep", "another-trip", "C", day(3))

	purged, err := s.repo.DeleteByItinerary(s.ctx, "trip")
	s.Require().NoError(err)
	s.Equal(2, purged)

	remaining, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal("keep", remaining[0].ID)
}
