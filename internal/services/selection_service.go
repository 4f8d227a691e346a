package services

import (
	"github.com/commutelog/commute-backend/internal/models"
)

// SelectionService tracks which calendar cells are selected for editing and
// resolves each selection against a day/route matrix. Multiple cells may be
// selected at once for multi-day edits.
type SelectionService struct {
	activeRoutes []models.ActiveRouteSelection
}

// NewSelectionService creates a new SelectionService
func NewSelectionService() *SelectionService {
	return &SelectionService{
		activeRoutes: []models.ActiveRouteSelection{},
	}
}

// ActiveRoutes returns the current selections
func (s *SelectionService) ActiveRoutes() []models.ActiveRouteSelection {
	return s.activeRoutes
}

// ActiveIndex returns the position of the selection, matched by day and
// direction, or -1 when absent or malformed.
func (s *SelectionService) ActiveIndex(selection models.ActiveRouteSelection) int {
	if !selection.Valid() {
		return -1
	}
	for i := range s.activeRoutes {
		if s.activeRoutes[i].Matches(selection) {
			return i
		}
	}
	return -1
}

// IsActive reports whether the cell is currently selected
func (s *SelectionService) IsActive(selection models.ActiveRouteSelection) bool {
	return s.ActiveIndex(selection) > -1
}

// Activate adds a selection unless its cell is already active
func (s *SelectionService) Activate(selection models.ActiveRouteSelection) {
	if !selection.Valid() || s.IsActive(selection) {
		return
	}
	s.activeRoutes = append(s.activeRoutes, selection)
}

// Deactivate removes a selection; a no-op when the cell is not active
func (s *SelectionService) Deactivate(selection models.ActiveRouteSelection) {
	idx := s.ActiveIndex(selection)
	if idx < 0 {
		return
	}
	s.activeRoutes = append(s.activeRoutes[:idx], s.activeRoutes[idx+1:]...)
}

// Clear drops all selections
func (s *SelectionService) Clear() {
	s.activeRoutes = []models.ActiveRouteSelection{}
}

// ActiveRouteItems resolves every active selection against the matrix,
// producing one editable route item per selection. Days missing from the
// matrix resolve to the UI default (bike, zero distance).
func (s *SelectionService) ActiveRouteItems(days []models.RouteDay) []models.RouteItem {
	dayIndex := indexDays(days)

	items := make([]models.RouteItem, 0, len(s.activeRoutes))
	for _, selection := range s.activeRoutes {
		if !selection.Valid() {
			continue
		}
		key := models.DayOf(selection.Timestamp).Format(models.DateLayout)
		if day, ok := dayIndex[key]; ok {
			items = append(items, day.Slot(selection.Direction))
			continue
		}
		items = append(items, models.DefaultRouteItem(selection.Timestamp, selection.Direction))
	}
	return items
}

// IsCalendarRouteLogged reports whether the cell addressed by the selection
// holds a real log entry. Malformed selections and days missing from the
// matrix resolve to false.
func (s *SelectionService) IsCalendarRouteLogged(selection models.ActiveRouteSelection, days []models.RouteDay) bool {
	if !selection.Valid() {
		return false
	}
	key := models.DayOf(selection.Timestamp).Format(models.DateLayout)
	day, ok := indexDays(days)[key]
	if !ok {
		return false
	}
	item := day.Slot(selection.Direction)
	return item.IsLogged()
}

// IsAnyActiveLogged reports whether at least one active selection resolves
// to a logged route
func (s *SelectionService) IsAnyActiveLogged(days []models.RouteDay) bool {
	for _, selection := range s.activeRoutes {
		if s.IsCalendarRouteLogged(selection, days) {
			return true
		}
	}
	return false
}

// indexDays keys a matrix by ISO date string for selection lookups
func indexDays(days []models.RouteDay) map[string]models.RouteDay {
	index := make(map[string]models.RouteDay, len(days))
	for _, day := range days {
		index[day.Date.Format(models.DateLayout)] = day
	}
	return index
}
