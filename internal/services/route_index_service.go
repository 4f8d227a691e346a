package services

import (
	"encoding/json"

	"github.com/commutelog/commute-backend/internal/models"
)

// RouteIndex collects finished route edits, de-duplicated by
// (date, direction), ahead of submission to the backend.
type RouteIndex struct {
	items []models.RouteItem
}

// NewRouteIndex creates an empty RouteIndex
func NewRouteIndex() *RouteIndex {
	return &RouteIndex{
		items: []models.RouteItem{},
	}
}

// Upsert merges the incoming routes into the index: an entry with a matching
// day and direction is replaced, anything else is appended.
func (idx *RouteIndex) Upsert(routes []models.RouteItem) {
	for _, route := range routes {
		replaced := false
		for i := range idx.items {
			if idx.items[i].MatchesCell(route.Date, route.Direction) {
				idx.items[i] = route
				replaced = true
				break
			}
		}
		if !replaced {
			idx.items = append(idx.items, route)
		}
	}
}

// Items returns the collected routes
func (idx *RouteIndex) Items() []models.RouteItem {
	return idx.items
}

// Len returns the number of collected routes
func (idx *RouteIndex) Len() int {
	return len(idx.items)
}

// CompareFeatures reports whether two drawn lines are identical: their
// vertex arrays must serialize to the same bytes. Order-sensitive, exact
// coordinate equality, no tolerance. Used to detect unchanged routes before
// persisting.
func CompareFeatures(a, b *models.LineString) bool {
	if a == nil || b == nil {
		return a == b
	}
	aJSON, errA := json.Marshal(a)
	bJSON, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(aJSON) == string(bJSON)
}
