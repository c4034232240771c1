package route_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/internal/itinerary"
	"tripvault/internal/route"
	"tripvault/pkg/domainerrors"
	"tripvault/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx         context.Context
	itineraries *itinerary.Repository
	svc         *route.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	store := docstore.NewInMemoryStore()
	s.itineraries = itinerary.NewRepository(store, testutil.Logger())
	s.svc = route.NewService(route.NewRepository(store, testutil.Logger()), s.itineraries, nil, testutil.Logger())
}

func item(id, locationName string, day int) domain.ItineraryItem {
	return domain.ItineraryItem{
		ID:       id,
		Date:     time.Date(2026, 7, day, 0, 0, 0, 0, time.UTC),
		Location: domain.Location{Name: locationName},
		Activity: "visit " + locationName,
	}
}

func (s *ServiceSuite) TestCreateFromItineraryDeduplicatesLocations() {
	trip, err := s.itineraries.Create(s.ctx, domain.Itinerary{
		Title: "Rome Long Weekend",
		Items: []domain.ItineraryItem{
			// stored out of order; generation must sort first
			item("i3", "A", 3),
			item("i1", "A", 1),
			item("i2", "B", 2),
			item("i4", "C", 4),
		},
	})
	s.Require().NoError(err)

	created, err := s.svc.CreateFromItinerary(s.ctx, trip.ID)
	s.Require().NoError(err)

	s.Equal("Rome Long Weekend", created.Title)
	s.Equal(trip.ID, created.CreatedFrom)
	s.Require().Len(created.Locations, 3)
	for i, want := range []string{"A", "B", "C"} {
		s.Equal(want, created.Locations[i].Location.Name)
		s.Equal(i, created.Locations[i].Order)
	}
}

func (s *ServiceSuite) TestCreateFromItineraryNeedsTwoDistinctLocations() {
	trip, err := s.itineraries.Create(s.ctx, domain.Itinerary{
		Title: "One Stop",
		Items: []domain.ItineraryItem{
			item("i1", "A", 1),
			item("i2", "A", 2),
		},
	})
	s.Require().NoError(err)

	_, err = s.svc.CreateFromItinerary(s.ctx, trip.ID)
	s.True(domainerrors.Is(err, domainerrors.CodeValidation))

	all, listErr := s.svc.GetAll(s.ctx)
	s.Require().NoError(listErr)
	s.Empty(all, "nothing persisted on validation failure")
}

func (s *ServiceSuite) TestCreateFromItineraryMissing() {
	_, err := s.svc.CreateFromItinerary(s.ctx, "ghost")
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *ServiceSuite) TestManualCreateAndDelete() {
	created, err := s.svc.Create(s.ctx, domain.Route{
		Title: "manual",
		Locations: []domain.RouteLocation{
			{Location: domain.Location{Name: "A"}, Order: 0},
			{Location: domain.Location{Name: "B"}, Order: 1},
		},
	})
	s.Require().NoError(err)
	s.Empty(created.CreatedFrom)

	s.Require().NoError(s.svc.Delete(s.ctx, created.ID))
	_, err = s.svc.Get(s.ctx, created.ID)
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *ServiceSuite) TestExportRoundTrips() {
	created, err := s.svc.Create(s.ctx, domain.Route{
		Title: "exported",
		Locations: []domain.RouteLocation{
			{Location: domain.Location{Name: "A"}, Order: 0},
			{Location: domain.Location{Name: "B"}, Order: 1},
		},
	})
	s.Require().NoError(err)

	doc, err := s.svc.Export(s.ctx, created.ID)
	s.Require().NoError(err)

	decoded, err := docstore.Decode[domain.Route](doc)
	s.Require().NoError(err)
	s.Equal(created.ID, decoded.ID)
	s.Equal(created.Title, decoded.Title)
}
