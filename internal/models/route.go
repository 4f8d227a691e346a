package models

import (
	"fmt"
	"time"
)

// TransportType represents the mode of transport for a logged commute
type TransportType string

const (
	TransportBike TransportType = "bike"
	TransportCar  TransportType = "car"
	TransportWalk TransportType = "walk"
	TransportBus  TransportType = "bus"
	// TransportHome marks a day worked from home (synthetic non-commute)
	TransportHome TransportType = "home"
	// TransportNone marks a day+direction with no logged route
	TransportNone TransportType = "none"
)

// TransportDirection represents whether a route is the morning or evening commute
type TransportDirection string

const (
	DirectionToWork   TransportDirection = "toWork"
	DirectionFromWork TransportDirection = "fromWork"
)

// InputType represents how the route distance was entered
type InputType string

const (
	InputTypeNumber InputType = "inputNumber"
	InputTypeMap    InputType = "inputMap"
)

// RouteItem is one logged (or synthesized) commute record for a date+direction.
// Identity for matching is (date, direction), not ID, since IDs are empty
// for unsaved items.
type RouteItem struct {
	ID           string             `json:"id"`
	Date         time.Time          `json:"date"`
	Direction    TransportDirection `json:"direction"`
	Transport    TransportType      `json:"transport"`
	Distance     string             `json:"distance"`
	InputType    InputType          `json:"input_type"`
	RouteFeature *LineString        `json:"route_feature,omitempty"`
	Dirty        bool               `json:"dirty,omitempty"`
}

// IsLogged reports whether the item carries a real log entry
func (r *RouteItem) IsLogged() bool {
	return r.Transport != TransportNone
}

// MatchesCell reports whether this item belongs to the given calendar cell.
// Date comparison is day-granular.
func (r *RouteItem) MatchesCell(date time.Time, direction TransportDirection) bool {
	return r.Direction == direction && SameDay(r.Date, date)
}

// EmptyRouteItem synthesizes the placeholder for a day+direction with no log
func EmptyRouteItem(date time.Time, direction TransportDirection) RouteItem {
	day := DayOf(date)
	return RouteItem{
		ID:        fmt.Sprintf("%s-%s", day.Format(DateLayout), direction),
		Date:      day,
		Direction: direction,
		Transport: TransportNone,
		Distance:  "0",
		InputType: InputTypeNumber,
	}
}

// DefaultRouteItem synthesizes the editable default offered by the UI when a
// selected cell has no day in the matrix. Distinct from EmptyRouteItem.
func DefaultRouteItem(date time.Time, direction TransportDirection) RouteItem {
	return RouteItem{
		Date:      DayOf(date),
		Direction: direction,
		Transport: TransportBike,
		Distance:  "0",
		InputType: InputTypeNumber,
	}
}

// RouteDay is one calendar day's pair of commute records. Both slots are
// always populated, synthesized when no matching log exists.
type RouteDay struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	ToWork   RouteItem `json:"toWork"`
	FromWork RouteItem `json:"fromWork"`
}

// Slot returns the record for the given direction
func (d *RouteDay) Slot(direction TransportDirection) RouteItem {
	if direction == DirectionFromWork {
		return d.FromWork
	}
	return d.ToWork
}

// ActiveRouteSelection is a calendar cell currently targeted for editing.
// Not persisted; multiple selections may be active at once.
type ActiveRouteSelection struct {
	Timestamp time.Time          `json:"timestamp"`
	Direction TransportDirection `json:"direction"`
}

// Valid reports whether the selection can resolve to a calendar cell
func (s *ActiveRouteSelection) Valid() bool {
	return !s.Timestamp.IsZero() && s.Direction != ""
}

// Matches compares two selections at day granularity. Two selections on the
// same calendar day with different times-of-day are the same cell.
func (s *ActiveRouteSelection) Matches(other ActiveRouteSelection) bool {
	return s.Direction == other.Direction && SameDay(s.Timestamp, other.Timestamp)
}

// DayOf truncates a timestamp to its calendar day. The result is anchored
// at UTC midnight so that day arithmetic and ordering stay consistent
// between parsed phase dates and wall-clock timestamps.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
