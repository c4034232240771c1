// Package domain holds the travel entities persisted by the repositories and
// the validation rules every create/update path runs before persisting.
package domain

import (
	"sort"
	"time"

	"tripvault/pkg/domainerrors"
)

// Itinerary is the aggregate root: a trip together with its embedded ordered
// item list. Items are owned by value here for read efficiency but also
// persist as standalone documents (see the item repository); at steady state
// the embedded list must match the standalone documents whose ItineraryID
// points here.
type Itinerary struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Items       []ItineraryItem `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	ModifiedAt  time.Time       `json:"modified_at"`
}

// Validate checks the invariants a stored itinerary must hold.
func (it Itinerary) Validate() error {
	if isBlank(it.Title) {
		return domainerrors.Validation("title", "must not be blank")
	}
	if it.StartDate != nil && it.EndDate != nil && it.EndDate.Before(*it.StartDate) {
		return domainerrors.Validation("end_date", "must not be before start_date")
	}
	return nil
}

// ReplaceItem swaps the embedded entry with the same id, returning false when
// no entry matches.
func (it *Itinerary) ReplaceItem(item ItineraryItem) bool {
	for i := range it.Items {
		if it.Items[i].ID == item.ID {
			it.Items[i] = item
			return true
		}
	}
	return false
}

// RemoveItem drops the embedded entry with the given id, returning false when
// no entry matches.
func (it *Itinerary) RemoveItem(itemID string) bool {
	for i := range it.Items {
		if it.Items[i].ID == itemID {
			it.Items = append(it.Items[:i], it.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ItineraryItem is one dated activity on a trip. It lives twice: as its own
// document under "item:<id>" and embedded in the owning itinerary.
type ItineraryItem struct {
	ID            string     `json:"id"`
	ItineraryID   string     `json:"itinerary_id"`
	Date          time.Time  `json:"date"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty"`
	DepartureTime *time.Time `json:"departure_time,omitempty"`
	Location      Location   `json:"location"`
	Activity      string     `json:"activity"`
	Notes         string     `json:"notes,omitempty"`
	Hashtags      []Hashtag  `json:"hashtags,omitempty"`
	Photos        []Photo    `json:"photos,omitempty"`
	CoverPhotoID  *string    `json:"cover_photo_id,omitempty"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ModifiedAt    time.Time  `json:"modified_at"`
}

// Validate checks the invariants a stored item must hold.
func (i ItineraryItem) Validate() error {
	if isBlank(i.Activity) {
		return domainerrors.Validation("activity", "must not be blank")
	}
	if err := i.Location.Validate(); err != nil {
		return err
	}
	if i.ArrivalTime != nil && i.DepartureTime != nil && i.DepartureTime.Before(*i.ArrivalTime) {
		return domainerrors.Validation("departure_time", "must not be before arrival_time")
	}
	if i.IsCompleted && i.CompletedAt == nil {
		return domainerrors.Validation("completed_at", "must be set when is_completed")
	}
	if !i.IsCompleted && i.CompletedAt != nil {
		return domainerrors.Validation("completed_at", "must be empty unless is_completed")
	}
	if i.CoverPhotoID != nil && i.PhotoByID(*i.CoverPhotoID) == nil {
		return domainerrors.Validation("cover_photo_id", "must reference an embedded photo")
	}
	return nil
}

// PhotoByID returns the embedded photo with the given id, or nil.
func (i *ItineraryItem) PhotoByID(photoID string) *Photo {
	for idx := range i.Photos {
		if i.Photos[idx].ID == photoID {
			return &i.Photos[idx]
		}
	}
	return nil
}

// PrimaryTime is the value used to order same-date items: arrival time,
// falling back to departure time, falling back to end-of-day so untimed items
// sort after timed ones on the same date.
func (i ItineraryItem) PrimaryTime() time.Time {
	if i.ArrivalTime != nil {
		return *i.ArrivalTime
	}
	if i.DepartureTime != nil {
		return *i.DepartureTime
	}
	y, m, d := i.Date.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, i.Date.Location())
}

// SortItems orders items ascending by date, then by primary time. Every
// "list items" query and the route generator use this single ordering.
func SortItems(items []ItineraryItem) {
	sort.SliceStable(items, func(a, b int) bool {
		da, db := dateOnly(items[a].Date), dateOnly(items[b].Date)
		if !da.Equal(db) {
			return da.Before(db)
		}
		return items[a].PrimaryTime().Before(items[b].PrimaryTime())
	})
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
