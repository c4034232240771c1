package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tripvault/internal/domain"
)

func TestDraftExpired(t *testing.T) {
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)

	fresh := domain.Draft{CreatedAt: now.Add(-6 * 24 * time.Hour)}
	stale := domain.Draft{CreatedAt: now.Add(-8 * 24 * time.Hour)}

	assert.False(t, fresh.Expired(now))
	assert.True(t, stale.Expired(now))
}

func TestDraftValidate(t *testing.T) {
	assert.NoError(t, domain.Draft{Type: domain.DraftItinerary}.Validate())
	assert.NoError(t, domain.Draft{Type: domain.DraftItem}.Validate())
	assert.Error(t, domain.Draft{Type: "route"}.Validate())
}

func TestRouteValidate(t *testing.T) {
	twoStops := domain.Route{ID: "r", Title: "walk", Locations: []domain.RouteLocation{
		{Location: domain.Location{Name: "A"}},
		{Location: domain.Location{Name: "B"}},
	}}
	assert.NoError(t, twoStops.Validate())

	sameName := domain.Route{ID: "r", Title: "walk", Locations: []domain.RouteLocation{
		{Location: domain.Location{Name: "A"}},
		{Location: domain.Location{Name: "A"}},
	}}
	assert.Error(t, sameName.Validate(), "two stops sharing a name are one distinct location")

	assert.Error(t, domain.Route{ID: "r", Title: "walk"}.Validate())
	assert.Error(t, domain.Route{ID: "r", Title: " ", Locations: twoStops.Locations}.Validate())
}
