package domain

import (
	"time"

	"tripvault/pkg/domainerrors"
)

// DraftType names the form a draft belongs to. At most one live draft exists
// per type.
type DraftType string

const (
	DraftItinerary DraftType = "itinerary"
	DraftItem      DraftType = "item"
)

// DraftTypes lists every known draft type, in sweep order.
var DraftTypes = []DraftType{DraftItinerary, DraftItem}

// DraftTTL is the retention window measured from CreatedAt. Older drafts are
// treated as absent and lazily deleted on the next read.
const DraftTTL = 7 * 24 * time.Hour

// Draft is ephemeral form state, keyed by type.
type Draft struct {
	ID         string            `json:"id"`
	Type       DraftType         `json:"type"`
	Data       map[string]string `json:"data"`
	CreatedAt  time.Time         `json:"created_at"`
	ModifiedAt time.Time         `json:"modified_at"`
}

// Expired reports whether the draft is past its retention window at now.
// Expiry is a pure function of (draft, now); no background sweep exists.
func (d Draft) Expired(now time.Time) bool {
	return now.Sub(d.CreatedAt) > DraftTTL
}

// Validate checks the draft type is known.
func (d Draft) Validate() error {
	switch d.Type {
	case DraftItinerary, DraftItem:
		return nil
	default:
		return domainerrors.Validation("type", "unknown draft type")
	}
}
