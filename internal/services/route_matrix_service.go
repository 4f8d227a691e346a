package services

import (
	"time"

	"github.com/commutelog/commute-backend/internal/models"
)

// RouteMatrixService builds dense, gap-filled day/route matrices from a
// sparse list of logged routes.
type RouteMatrixService struct{}

// NewRouteMatrixService creates a new RouteMatrixService
func NewRouteMatrixService() *RouteMatrixService {
	return &RouteMatrixService{}
}

// Build produces one RouteDay per calendar day, iterating backward from
// endInclusive down to, but not including, startExclusive. The asymmetry is
// deliberate: callers pre-subtract one day from the true first day. Each
// direction slot holds the first matching logged route for that day, or a
// synthesized placeholder with transport "none".
func (s *RouteMatrixService) Build(startExclusive, endInclusive time.Time, routes []models.RouteItem) []models.RouteDay {
	start := models.DayOf(startExclusive)
	days := []models.RouteDay{}

	for d := models.DayOf(endInclusive); d.After(start); d = d.AddDate(0, 0, -1) {
		days = append(days, models.RouteDay{
			ID:       d.Format(models.DateLayout),
			Date:     d,
			ToWork:   findRoute(routes, d, models.DirectionToWork),
			FromWork: findRoute(routes, d, models.DirectionFromWork),
		})
	}

	return days
}

// findRoute returns the first route logged for the given day and direction.
// First match wins; the backend guarantees at most one per cell.
func findRoute(routes []models.RouteItem, day time.Time, direction models.TransportDirection) models.RouteItem {
	for i := range routes {
		if routes[i].MatchesCell(day, direction) {
			return routes[i]
		}
	}
	return models.EmptyRouteItem(day, direction)
}

// LoggableDays builds the editable window matrix [loggingStart, loggingEnd]
func (s *RouteMatrixService) LoggableDays(loggingStart, loggingEnd *time.Time, routes []models.RouteItem) []models.RouteDay {
	if loggingStart == nil || loggingEnd == nil {
		return []models.RouteDay{}
	}
	return s.Build(loggingStart.AddDate(0, 0, -1), *loggingEnd, routes)
}

// PreWindowDays builds the read-only matrix of competition days that precede
// the logging window: [phaseFrom, loggingStart).
func (s *RouteMatrixService) PreWindowDays(phaseFrom, loggingStart *time.Time, routes []models.RouteItem) []models.RouteDay {
	if phaseFrom == nil || loggingStart == nil {
		return []models.RouteDay{}
	}
	return s.Build(phaseFrom.AddDate(0, 0, -1), loggingStart.AddDate(0, 0, -1), routes)
}

// CompetitionDays builds the full competition span matrix [phaseFrom, phaseTo]
func (s *RouteMatrixService) CompetitionDays(phaseFrom, phaseTo *time.Time, routes []models.RouteItem) []models.RouteDay {
	if phaseFrom == nil || phaseTo == nil {
		return []models.RouteDay{}
	}
	return s.Build(phaseFrom.AddDate(0, 0, -1), *phaseTo, routes)
}
