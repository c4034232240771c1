package item_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/internal/item"
	"tripvault/internal/itinerary"
	"tripvault/pkg/domainerrors"
	"tripvault/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx         context.Context
	store       *testutil.FaultStore
	itineraries *itinerary.Repository
	svc         *item.Service
	trip        domain.Itinerary
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testutil.NewFaultStore(docstore.NewInMemoryStore())
	s.itineraries = itinerary.NewRepository(s.store, testutil.Logger())
	s.svc = item.NewService(item.NewRepository(s.store, testutil.Logger()), s.itineraries, nil, testutil.Logger())

	trip, err := s.itineraries.Create(s.ctx, domain.Itinerary{Title: "Lisbon"})
	s.Require().NoError(err)
	s.trip = trip
}

func (s *ServiceSuite) addItem(activity, notes string) domain.ItineraryItem {
	added, err := s.svc.AddItem(s.ctx, domain.ItineraryItem{
		ItineraryID: s.trip.ID,
		Date:        time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Location:    domain.Location{Name: "Alfama"},
		Activity:    activity,
		Notes:       notes,
	})
	s.Require().NoError(err)
	return added
}

func (s *ServiceSuite) tripDocKey() string {
	return docstore.DocKey("itinerary", s.trip.ID)
}

func (s *ServiceSuite) TestAddItemWritesBothRepresentations() {
	added := s.addItem("tram ride", "ride the #28tram at dawn")

	standalone, err := s.svc.GetItem(s.ctx, added.ID)
	s.Require().NoError(err)
	s.Equal("tram ride", standalone.Activity)
	s.Require().Len(standalone.Hashtags, 1)
	s.Equal("28tram", standalone.Hashtags[0].Tag)

	owner, err := s.itineraries.Get(s.ctx, s.trip.ID)
	s.Require().NoError(err)
	s.Require().Len(owner.Items, 1)
	s.Equal(added.ID, owner.Items[0].ID)
}

func (s *ServiceSuite) TestAddItemUnknownItinerary() {
	_, err := s.svc.AddItem(s.ctx, domain.ItineraryItem{
		ItineraryID: "ghost",
		Location:    domain.Location{Name: "x"},
		Activity:    "y",
	})
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *ServiceSuite) TestAddItemPartialFailureWhenEmbedWriteFails() {
	s.store.FailSave(s.tripDocKey(), errors.New("connection reset"))

	added, err := s.svc.AddItem(s.ctx, domain.ItineraryItem{
		ItineraryID: s.trip.ID,
		Date:        time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Location:    domain.Location{Name: "Alfama"},
		Activity:    "tram ride",
	})
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodePartialFailure))

	// the standalone write stuck even though the operation reported failure
	standalone, getErr := s.svc.GetItem(s.ctx, added.ID)
	s.Require().NoError(getErr)
	s.Equal("tram ride", standalone.Activity)
}

func (s *ServiceSuite) TestUpdateItemReextractsHashtagsAndSyncs() {
	added := s.addItem("dinner", "#seafood tonight")

	added.Notes = "changed plans, #sushi and more #sushi"
	added.Activity = "sushi dinner"
	updated, err := s.svc.UpdateItem(s.ctx, added)
	s.Require().NoError(err)
	s.Require().Len(updated.Hashtags, 1)
	s.Equal("sushi", updated.Hashtags[0].Tag)

	owner, err := s.itineraries.Get(s.ctx, s.trip.ID)
	s.Require().NoError(err)
	s.Require().Len(owner.Items, 1)
	s.Equal("sushi dinner", owner.Items[0].Activity)
}

func (s *ServiceSuite) TestUpdateItemHealsMissingEmbeddedCopy() {
	added := s.addItem("walk", "")

	// simulate an earlier divergence: embedded copy missing
	owner, err := s.itineraries.Get(s.ctx, s.trip.ID)
	s.Require().NoError(err)
	owner.Items = []domain.ItineraryItem{}
	_, err = s.itineraries.Update(s.ctx, owner)
	s.Require().NoError(err)

	added.Activity = "long walk"
	_, err = s.svc.UpdateItem(s.ctx, added)
	s.Require().NoError(err)

	owner, err = s.itineraries.Get(s.ctx, s.trip.ID)
	s.Require().NoError(err)
	s.Require().Len(owner.Items, 1)
	s.Equal("long walk", owner.Items[0].Activity)
}

func (s *ServiceSuite) TestDeleteItemRemovesEmbeddedCopy() {
	added := s.addItem("museum", "")

	s.Require().NoError(s.svc.DeleteItem(s.ctx, added.ID))

	_, err := s.svc.GetItem(s.ctx, added.ID)
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))

	owner, err := s.itineraries.Get(s.ctx, s.trip.ID)
	s.Require().NoError(err)
	s.Empty(owner.Items)
}

func (s *ServiceSuite) TestDeleteItemPartialFailure() {
	added := s.addItem("museum", "")

	s.store.FailSave(s.tripDocKey(), errors.New("connection reset"))
	err := s.svc.DeleteItem(s.ctx, added.ID)
	s.True(domainerrors.Is(err, domainerrors.CodePartialFailure))

	// standalone doc is gone despite the reported failure
	_, err = s.svc.GetItem(s.ctx, added.ID)
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *ServiceSuite) TestToggleCompletionRoundTrip() {
	added := s.addItem("castle", "")
	ts := time.Date(2026, 5, 10, 17, 0, 0, 0, time.UTC)

	completed, err := s.svc.ToggleCompletion(s.ctx, added.ID, ts)
	s.Require().NoError(err)
	s.True(completed.IsCompleted)
	s.Require().NotNil(completed.CompletedAt)
	s.Equal(ts, *completed.CompletedAt)

	reopened, err := s.svc.ToggleCompletion(s.ctx, added.ID, ts)
	s.Require().NoError(err)
	s.False(reopened.IsCompleted)
	s.Nil(reopened.CompletedAt)
}

func (s *ServiceSuite) TestProgress() {
	progress, err := s.svc.Progress(s.ctx, s.trip.ID)
	s.Require().NoError(err)
	s.Zero(progress)

	first := s.addItem("one", "")
	s.addItem("two", "")

	_, err = s.svc.ToggleCompletion(s.ctx, first.ID, time.Now().UTC())
	s.Require().NoError(err)

	progress, err = s.svc.Progress(s.ctx, s.trip.ID)
	s.Require().NoError(err)
	s.InDelta(50.0, progress, 0.001)
}

func (s *ServiceSuite) TestBatchCompleteAllSucceed() {
	a := s.addItem("a", "")
	b := s.addItem("b", "")

	result, err := s.svc.BatchComplete(s.ctx, []string{a.ID, b.ID}, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal(2, result.Succeeded)
	s.Empty(result.Failed)
}

func (s *ServiceSuite) TestBatchDeletePartialFailure() {
	a := s.addItem("a", "")

	result, err := s.svc.BatchDelete(s.ctx, []string{a.ID, "ghost"})
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodePartialFailure))
	s.Equal(1, result.Succeeded)
	s.Equal([]string{"ghost"}, result.Failed)
}

func (s *ServiceSuite) TestBatchDeleteTotalFailure() {
	result, err := s.svc.BatchDelete(s.ctx, []string{"ghost1", "ghost2"})
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound), "total failure reports the first underlying error")
	s.Zero(result.Succeeded)
	s.Len(result.Failed, 2)
}
