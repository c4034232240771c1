package hashtag

import (
	"context"
	"sort"
	"strings"

	"tripvault/internal/domain"
)

// ItineraryLister is the read slice the aggregator needs.
type ItineraryLister interface {
	GetAll(ctx context.Context) ([]domain.Itinerary, error)
}

// Service aggregates tags across all stored itineraries on demand. Nothing
// is cached; the corpus is one person's trips.
type Service struct {
	itineraries ItineraryLister
}

func NewService(itineraries ItineraryLister) *Service {
	return &Service{itineraries: itineraries}
}

// All tallies every tag across every item, case-sensitively, ordered by
// usage count descending with tag name breaking ties.
func (s *Service) All(ctx context.Context) ([]domain.Hashtag, error) {
	all, err := s.itineraries.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	tally := make(map[string]*domain.Hashtag)
	for _, it := range all {
		for _, item := range it.Items {
			for _, tag := range item.Hashtags {
				agg, ok := tally[tag.Tag]
				if !ok {
					copied := tag
					tally[tag.Tag] = &copied
					continue
				}
				agg.UsageCount += tag.UsageCount
				if tag.FirstUsed.Before(agg.FirstUsed) {
					agg.FirstUsed = tag.FirstUsed
				}
				if tag.LastUsed.After(agg.LastUsed) {
					agg.LastUsed = tag.LastUsed
				}
			}
		}
	}

	aggregated := make([]domain.Hashtag, 0, len(tally))
	for _, agg := range tally {
		aggregated = append(aggregated, *agg)
	}
	sort.Slice(aggregated, func(a, b int) bool {
		if aggregated[a].UsageCount != aggregated[b].UsageCount {
			return aggregated[a].UsageCount > aggregated[b].UsageCount
		}
		return aggregated[a].Tag < aggregated[b].Tag
	})
	return aggregated, nil
}

// Suggest returns aggregated tags matching the prefix case-insensitively. A
// blank prefix suggests nothing rather than everything.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]domain.Hashtag, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []domain.Hashtag{}, nil
	}
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(prefix)
	matched := make([]domain.Hashtag, 0, len(all))
	for _, tag := range all {
		if strings.HasPrefix(strings.ToLower(tag.Tag), needle) {
			matched = append(matched, tag)
		}
	}
	return matched, nil
}

// FilterItems keeps the items tagged with tag, compared case-insensitively.
func FilterItems(items []domain.ItineraryItem, tag string) []domain.ItineraryItem {
	matched := make([]domain.ItineraryItem, 0, len(items))
	for _, item := range items {
		for _, t := range item.Hashtags {
			if strings.EqualFold(t.Tag, tag) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}
