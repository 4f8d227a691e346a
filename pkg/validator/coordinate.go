package validator

import (
	"errors"
	"time"
)

var (
	// ErrLongitudeOutOfRange indicates a longitude outside [-180, 180]
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180")

	// ErrLatitudeOutOfRange indicates a latitude outside [-90, 90]
	ErrLatitudeOutOfRange = errors.New("latitude must be between -90 and 90")

	// ErrEmptyDate indicates a missing calendar date
	ErrEmptyDate = errors.New("date cannot be empty")

	// ErrInvalidDateFormat indicates a date not in YYYY-MM-DD format
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
)

// dateLayout matches the calendar date format used for matrix keys
const dateLayout = "2006-01-02"

// CoordinateValidator handles geographic input validation
type CoordinateValidator struct{}

// NewCoordinateValidator creates a new coordinate validator instance
func NewCoordinateValidator() *CoordinateValidator {
	return &CoordinateValidator{}
}

// ValidateLonLat validates a single [lon, lat] coordinate pair
func (v *CoordinateValidator) ValidateLonLat(lon, lat float64) error {
	if lon < -180 || lon > 180 {
		return ErrLongitudeOutOfRange
	}
	if lat < -90 || lat > 90 {
		return ErrLatitudeOutOfRange
	}
	return nil
}

// ValidateVertices validates every vertex of a drawn line
func (v *CoordinateValidator) ValidateVertices(vertices [][2]float64) error {
	for _, vertex := range vertices {
		if err := v.ValidateLonLat(vertex[0], vertex[1]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDate validates and parses a YYYY-MM-DD calendar date
func (v *CoordinateValidator) ValidateDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, ErrEmptyDate
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return parsed, nil
}
