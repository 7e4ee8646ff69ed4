// Package search is the deterministic filter and ranking over the catalog.
package search

import (
	"sort"
	"strings"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
)

const (
	maxSuggestions = 5
	fallbackCount  = 3
)

// Find filters restaurants conjunctively by the present query fields and
// ranks the result. More than maxSuggestions matches keep only the top rated
// ones. Zero matches fall back to the highest-rated restaurants of the whole
// catalog, so a non-empty catalog never yields an empty result.
func Find(q contractx.SearchQuery, restaurants []catalogx.Restaurant) []catalogx.Restaurant {
	matched := make([]catalogx.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if matches(q, r) {
			matched = append(matched, r)
		}
	}

	if len(matched) == 0 {
		return topRated(restaurants, fallbackCount)
	}
	if len(matched) > maxSuggestions {
		return topRated(matched, maxSuggestions)
	}
	return matched
}

func matches(q contractx.SearchQuery, r catalogx.Restaurant) bool {
	if q.Cuisine != "" && !containsFold(r.Cuisine, q.Cuisine) {
		return false
	}
	if q.Location != "" && !containsFold(r.Location, q.Location) && !containsFold(r.Address, q.Location) {
		return false
	}
	if q.PriceRange != "" && !containsFold(r.PriceRange, q.PriceRange) {
		return false
	}
	if q.Seating != "" && !anyContainsFold(r.Seating, q.Seating) {
		return false
	}
	return true
}

func topRated(restaurants []catalogx.Restaurant, n int) []catalogx.Restaurant {
	ranked := make([]catalogx.Restaurant, len(restaurants))
	copy(ranked, restaurants)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if containsFold(h, needle) {
			return true
		}
	}
	return false
}
