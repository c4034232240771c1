package itinerary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"tripvault/internal/docstore"
	"tripvault/internal/domain"
	"tripvault/pkg/domainerrors"
	"tripvault/pkg/testutil"
)

type recordingPurger struct {
	calls []string
	count int
	err   error
}

func (p *recordingPurger) DeleteByItinerary(_ context.Context, itineraryID string) (int, error) {
	p.calls = append(p.calls, itineraryID)
	return p.count, p.err
}

type ServiceSuite struct {
	suite.Suite
	ctx    context.Context
	repo   *Repository
	purger *recordingPurger
	svc    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewRepository(docstore.NewInMemoryStore(), testutil.Logger())
	s.purger = &recordingPurger{count: 2}
	s.svc = NewService(s.repo, s.purger, nil, testutil.Logger())
}

func (s *ServiceSuite) TestDeleteCascadesItems() {
	created, err := s.svc.Create(s.ctx, domain.Itinerary{Title: "trip"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, created.ID))
	s.Equal([]string{created.ID}, s.purger.calls)

	_, err = s.svc.Get(s.ctx, created.ID)
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteMissingSkipsCascade() {
	err := s.svc.Delete(s.ctx, "ghost")
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
	s.Empty(s.purger.calls)
}

func (s *ServiceSuite) TestDeleteSucceedsWhenCascadeFails() {
	created, err := s.svc.Create(s.ctx, domain.Itinerary{Title: "trip"})
	s.Require().NoError(err)

	s.purger.err = errors.New("item store down")
	s.Require().NoError(s.svc.Delete(s.ctx, created.ID))

	_, err = s.svc.Get(s.ctx, created.ID)
	s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
}
