package services

import (
	"testing"
	"time"

	"github.com/commutelog/commute-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse(models.DateLayout, date)
	require.NoError(t, err)
	return parsed
}

func loggedRoute(date time.Time, direction models.TransportDirection, transport models.TransportType) models.RouteItem {
	return models.RouteItem{
		ID:        "saved-" + date.Format(models.DateLayout) + "-" + string(direction),
		Date:      date,
		Direction: direction,
		Transport: transport,
		Distance:  "4.2",
		InputType: models.InputTypeNumber,
	}
}

func TestBuildMatrixCompleteness(t *testing.T) {
	service := NewRouteMatrixService()

	start := day(t, "2024-09-10") // exclusive
	end := day(t, "2024-09-20")   // inclusive

	days := service.Build(start, end, nil)

	require.Len(t, days, 10)
	// iteration runs backward from the inclusive end
	assert.Equal(t, "2024-09-20", days[0].ID)
	assert.Equal(t, "2024-09-11", days[9].ID)
	for _, d := range days {
		assert.NotEmpty(t, d.ToWork.ID)
		assert.NotEmpty(t, d.FromWork.ID)
	}
}

func TestBuildMatrixStartDateExcluded(t *testing.T) {
	service := NewRouteMatrixService()

	days := service.Build(day(t, "2024-09-19"), day(t, "2024-09-20"), nil)

	require.Len(t, days, 1)
	assert.Equal(t, "2024-09-20", days[0].ID)
}

func TestBuildMatrixSynthesizesEmptySlots(t *testing.T) {
	service := NewRouteMatrixService()

	days := service.Build(day(t, "2024-09-19"), day(t, "2024-09-20"), []models.RouteItem{})

	require.Len(t, days, 1)
	assert.Equal(t, models.TransportNone, days[0].ToWork.Transport)
	assert.Equal(t, models.TransportNone, days[0].FromWork.Transport)
	assert.Equal(t, "2024-09-20-toWork", days[0].ToWork.ID)
	assert.Equal(t, "2024-09-20-fromWork", days[0].FromWork.ID)
	assert.Equal(t, "0", days[0].ToWork.Distance)
}

func TestBuildMatrixMatchesLoggedRoutes(t *testing.T) {
	service := NewRouteMatrixService()

	routes := []models.RouteItem{
		loggedRoute(day(t, "2024-09-20"), models.DirectionToWork, models.TransportBike),
		loggedRoute(day(t, "2024-09-19"), models.DirectionFromWork, models.TransportBus),
	}

	days := service.Build(day(t, "2024-09-18"), day(t, "2024-09-20"), routes)

	require.Len(t, days, 2)
	assert.Equal(t, models.TransportBike, days[0].ToWork.Transport)
	assert.Equal(t, models.TransportNone, days[0].FromWork.Transport)
	assert.Equal(t, models.TransportNone, days[1].ToWork.Transport)
	assert.Equal(t, models.TransportBus, days[1].FromWork.Transport)
}

func TestBuildMatrixMatchesAtDayGranularity(t *testing.T) {
	service := NewRouteMatrixService()

	// logged route carries a time-of-day; matching must ignore it
	loggedAt := time.Date(2024, 9, 20, 17, 45, 3, 0, time.UTC)
	routes := []models.RouteItem{loggedRoute(loggedAt, models.DirectionFromWork, models.TransportWalk)}

	days := service.Build(day(t, "2024-09-19"), day(t, "2024-09-20"), routes)

	require.Len(t, days, 1)
	assert.Equal(t, models.TransportWalk, days[0].FromWork.Transport)
}

func TestBuildMatrixFirstMatchWins(t *testing.T) {
	service := NewRouteMatrixService()

	first := loggedRoute(day(t, "2024-09-20"), models.DirectionToWork, models.TransportBike)
	second := loggedRoute(day(t, "2024-09-20"), models.DirectionToWork, models.TransportCar)

	days := service.Build(day(t, "2024-09-19"), day(t, "2024-09-20"), []models.RouteItem{first, second})

	require.Len(t, days, 1)
	assert.Equal(t, models.TransportBike, days[0].ToWork.Transport)
}

func TestBuildMatrixEmptyRange(t *testing.T) {
	service := NewRouteMatrixService()

	// end not after start: nothing to emit
	days := service.Build(day(t, "2024-09-20"), day(t, "2024-09-20"), nil)
	assert.Empty(t, days)

	days = service.Build(day(t, "2024-09-21"), day(t, "2024-09-20"), nil)
	assert.Empty(t, days)
}

func TestRangeHelpers(t *testing.T) {
	service := NewRouteMatrixService()

	phaseFrom := day(t, "2024-09-15")
	phaseTo := day(t, "2024-09-25")
	loggingStart := day(t, "2024-09-18")
	loggingEnd := day(t, "2024-09-20")

	t.Run("LoggableDays", func(t *testing.T) {
		days := service.LoggableDays(&loggingStart, &loggingEnd, nil)
		require.Len(t, days, 3)
		assert.Equal(t, "2024-09-20", days[0].ID)
		assert.Equal(t, "2024-09-18", days[2].ID)
	})

	t.Run("PreWindowDays", func(t *testing.T) {
		days := service.PreWindowDays(&phaseFrom, &loggingStart, nil)
		require.Len(t, days, 3)
		assert.Equal(t, "2024-09-17", days[0].ID)
		assert.Equal(t, "2024-09-15", days[2].ID)
	})

	t.Run("CompetitionDays", func(t *testing.T) {
		days := service.CompetitionDays(&phaseFrom, &phaseTo, nil)
		require.Len(t, days, 11)
		assert.Equal(t, "2024-09-25", days[0].ID)
		assert.Equal(t, "2024-09-15", days[10].ID)
	})

	t.Run("NilBoundsYieldEmptyMatrix", func(t *testing.T) {
		assert.Empty(t, service.LoggableDays(nil, &loggingEnd, nil))
		assert.Empty(t, service.LoggableDays(&loggingStart, nil, nil))
		assert.Empty(t, service.PreWindowDays(nil, &loggingStart, nil))
		assert.Empty(t, service.CompetitionDays(&phaseFrom, nil, nil))
	})
}
