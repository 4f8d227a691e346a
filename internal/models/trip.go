package models

import (
	"errors"
	"time"
)

// Trip is the persisted form of a logged commute route
type Trip struct {
	ID            string             `json:"id" db:"id"`
	UserID        string             `json:"user_id" db:"user_id"`
	CampaignID    string             `json:"campaign_id" db:"campaign_id"`
	TripDate      time.Time          `json:"trip_date" db:"trip_date"`
	Direction     TransportDirection `json:"direction" db:"direction"`
	Transport     TransportType      `json:"transport" db:"transport"`
	Distance      string             `json:"distance" db:"distance"`
	InputType     InputType          `json:"input_type" db:"input_type"`
	RouteGeometry *LineString        `json:"route_geometry,omitempty" db:"route_geometry"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" db:"updated_at"`
}

// ToRouteItem adapts a persisted trip into the shape the matrix builder consumes
func (t *Trip) ToRouteItem() RouteItem {
	return RouteItem{
		ID:           t.ID,
		Date:         t.TripDate,
		Direction:    t.Direction,
		Transport:    t.Transport,
		Distance:     t.Distance,
		InputType:    t.InputType,
		RouteFeature: t.RouteGeometry,
	}
}

// TripFromRouteItem adapts an edited route item into its persisted form
func TripFromRouteItem(userID, campaignID string, item RouteItem) Trip {
	return Trip{
		ID:            item.ID,
		UserID:        userID,
		CampaignID:    campaignID,
		TripDate:      DayOf(item.Date),
		Direction:     item.Direction,
		Transport:     item.Transport,
		Distance:      item.Distance,
		InputType:     item.InputType,
		RouteGeometry: item.RouteFeature,
	}
}

// SubmitTripRequest represents one trip payload in a submission
type SubmitTripRequest struct {
	Date         string             `json:"date" binding:"required"`
	Direction    TransportDirection `json:"direction" binding:"required"`
	Transport    TransportType      `json:"transport" binding:"required"`
	Distance     string             `json:"distance"`
	InputType    InputType          `json:"input_type"`
	RouteFeature *LineString        `json:"route_feature,omitempty"`
}

var validDirections = map[TransportDirection]bool{
	DirectionToWork:   true,
	DirectionFromWork: true,
}

var validTransports = map[TransportType]bool{
	TransportBike: true,
	TransportCar:  true,
	TransportWalk: true,
	TransportBus:  true,
	TransportHome: true,
	TransportNone: true,
}

// Validate validates a trip submission payload
func (r *SubmitTripRequest) Validate() error {
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	if !validDirections[r.Direction] {
		return errors.New("direction must be toWork or fromWork")
	}
	if !validTransports[r.Transport] {
		return errors.New("unknown transport type")
	}
	return nil
}

// ToRouteItem converts a validated submission payload into a route item
func (r *SubmitTripRequest) ToRouteItem() RouteItem {
	date, _ := time.Parse(DateLayout, r.Date)
	distance := r.Distance
	if distance == "" {
		distance = "0"
	}
	inputType := r.InputType
	if inputType == "" {
		inputType = InputTypeNumber
	}
	return RouteItem{
		Date:         date,
		Direction:    r.Direction,
		Transport:    r.Transport,
		Distance:     distance,
		InputType:    inputType,
		RouteFeature: r.RouteFeature,
	}
}
