package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLonLat(t *testing.T) {
	v := NewCoordinateValidator()

	tests := []struct {
		name     string
		lon      float64
		lat      float64
		expected error
	}{
		{name: "valid coordinate", lon: 14.42, lat: 50.08, expected: nil},
		{name: "boundary longitude", lon: 180, lat: 0, expected: nil},
		{name: "boundary latitude", lon: 0, lat: -90, expected: nil},
		{name: "longitude too large", lon: 180.01, lat: 0, expected: ErrLongitudeOutOfRange},
		{name: "longitude too small", lon: -181, lat: 0, expected: ErrLongitudeOutOfRange},
		{name: "latitude too large", lon: 0, lat: 90.5, expected: ErrLatitudeOutOfRange},
		{name: "latitude too small", lon: 0, lat: -91, expected: ErrLatitudeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLonLat(tt.lon, tt.lat)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestValidateVertices(t *testing.T) {
	v := NewCoordinateValidator()

	assert.NoError(t, v.ValidateVertices(nil))
	assert.NoError(t, v.ValidateVertices([][2]float64{{14.42, 50.08}, {14.5, 50.09}}))

	err := v.ValidateVertices([][2]float64{{14.42, 50.08}, {200, 50.09}})
	assert.ErrorIs(t, err, ErrLongitudeOutOfRange)
}

func TestValidateDate(t *testing.T) {
	v := NewCoordinateValidator()

	parsed, err := v.ValidateDate("2024-09-20")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, 20, parsed.Day())

	_, err = v.ValidateDate("")
	assert.ErrorIs(t, err, ErrEmptyDate)

	_, err = v.ValidateDate("20-09-2024")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = v.ValidateDate("2024-09-20T10:00:00Z")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
