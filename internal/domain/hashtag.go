package domain

import "time"

// Hashtag is always derived, never stored standalone: per-item extraction
// from notes, and on-demand global aggregation across all itineraries.
type Hashtag struct {
	Tag        string    `json:"tag"`
	UsageCount int       `json:"usage_count"`
	FirstUsed  time.Time `json:"first_used"`
	LastUsed   time.Time `json:"last_used"`
}
