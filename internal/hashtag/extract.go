// Package hashtag extracts tags from free-text notes and aggregates them
// across every stored itinerary.
package hashtag

import (
	"regexp"
	"time"

	"tripvault/internal/domain"
)

// pattern matches "#" followed by word characters or CJK ideographs, so both
// "#ramen" and "#東京" tag forms work.
var pattern = regexp.MustCompile(`#([\w\p{Han}]+)`)

// Extract pulls the hashtags out of text, deduplicated in first-occurrence
// order. Each extracted tag carries a usage count of 1 and both usage
// timestamps set to now; aggregation across items happens at read time.
func Extract(text string, now time.Time) []domain.Hashtag {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tags := make([]domain.Hashtag, 0, len(matches))
	for _, m := range matches {
		tag := m[1]
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, domain.Hashtag{
			Tag:        tag,
			UsageCount: 1,
			FirstUsed:  now,
			LastUsed:   now,
		})
	}
	return tags
}
