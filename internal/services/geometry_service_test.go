package services

import (
	"context"
	"errors"
	"testing"

	"github.com/commutelog/commute-backend/internal/models"
	"github.com/commutelog/commute-backend/pkg/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	addresses map[[2]float64]*geocoder.Address
	err       error
	calls     int
}

func (s *stubGeocoder) Reverse(_ context.Context, lon, lat float64) (*geocoder.Address, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if address, ok := s.addresses[[2]float64{lon, lat}]; ok {
		return address, nil
	}
	return &geocoder.Address{}, nil
}

func TestLengthShortLines(t *testing.T) {
	service := NewGeometryService(nil, 17)

	assert.Zero(t, service.Length(nil))
	assert.Zero(t, service.Length(models.LineString{}))
	assert.Zero(t, service.Length(models.LineString{{14.42, 50.08}}))
}

func TestLengthGreatCircle(t *testing.T) {
	service := NewGeometryService(nil, 17)

	// one degree of longitude along the equator
	line := models.LineString{{0, 0}, {1, 0}}
	assert.InDelta(t, 111.19, service.Length(line), 0.05)

	// summing segments equals the piecewise total
	multi := models.LineString{{0, 0}, {0.5, 0}, {1, 0}}
	assert.InDelta(t, service.Length(line), service.Length(multi), 1e-9)
}

func TestLengthLabelDeterminism(t *testing.T) {
	service := NewGeometryService(nil, 17)
	line := models.LineString{{14.42, 50.08}, {14.46, 50.1}, {14.5, 50.09}}

	first := service.LengthLabel(line)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, service.LengthLabel(line))
	}
	assert.Regexp(t, `^\d+ km$`, first)
}

func TestLengthLabelScale(t *testing.T) {
	service := NewGeometryService(nil, 17)

	assert.Equal(t, "0 km", service.LengthLabel(nil))

	// ~111.195 length units scale to 11120 on display
	line := models.LineString{{0, 0}, {1, 0}}
	assert.Equal(t, "11120 km", service.LengthLabel(line))
}

func TestMarkers(t *testing.T) {
	service := NewGeometryService(nil, 17)

	t.Run("EmptyLine", func(t *testing.T) {
		markers := service.Markers(nil)
		assert.Empty(t, markers.Vertices)
		assert.Nil(t, markers.Start)
		assert.Nil(t, markers.End)
	})

	t.Run("DrawnLine", func(t *testing.T) {
		line := models.LineString{{14.42, 50.08}, {14.46, 50.1}, {14.5, 50.09}}
		markers := service.Markers(line)

		require.Len(t, markers.Vertices, 3)
		require.NotNil(t, markers.Start)
		require.NotNil(t, markers.End)
		assert.Equal(t, [2]float64{14.42, 50.08}, *markers.Start)
		assert.Equal(t, [2]float64{14.5, 50.09}, *markers.End)

		// markers hold a copy; editing the original line must not leak through
		line[0][0] = 99
		assert.Equal(t, 14.42, markers.Vertices[0][0])
	})
}

func TestCenterView(t *testing.T) {
	service := NewGeometryService(nil, 16)

	t.Run("EmptyLineUsesMaxZoom", func(t *testing.T) {
		fit := service.CenterView(nil)
		assert.Equal(t, 16.0, fit.Zoom)
	})

	t.Run("SingleVertexCapsAtMaxZoom", func(t *testing.T) {
		fit := service.CenterView(models.LineString{{14.42, 50.08}})
		assert.Equal(t, [2]float64{14.42, 50.08}, fit.Center)
		assert.Equal(t, 16.0, fit.Zoom)
	})

	t.Run("ExtentCenterAndZoom", func(t *testing.T) {
		fit := service.CenterView(models.LineString{{14.4, 50.0}, {14.6, 50.2}})
		assert.InDelta(t, 14.5, fit.Center[0], 1e-9)
		assert.InDelta(t, 50.1, fit.Center[1], 1e-9)
		assert.LessOrEqual(t, fit.Zoom, 16.0)
		assert.Greater(t, fit.Zoom, 0.0)
	})

	t.Run("ShortRouteNotOverZoomed", func(t *testing.T) {
		fit := service.CenterView(models.LineString{{14.42, 50.08}, {14.4201, 50.0801}})
		assert.Equal(t, 16.0, fit.Zoom)
	})
}

func TestEndpointNames(t *testing.T) {
	line := models.LineString{{14.42, 50.08}, {14.5, 50.09}}

	t.Run("ResolvedFromGeocoder", func(t *testing.T) {
		stub := &stubGeocoder{addresses: map[[2]float64]*geocoder.Address{
			{14.42, 50.08}: {Road: "Vodičkova"},
			{14.5, 50.09}:  {Suburb: "Karlín"},
		}}
		service := NewGeometryService(stub, 17)

		start, finish := service.EndpointNames(context.Background(), line)
		assert.Equal(t, "Vodičkova", start)
		assert.Equal(t, "Karlín", finish)
		assert.Equal(t, 2, stub.calls)
	})

	t.Run("GeocoderFailureFallsBack", func(t *testing.T) {
		stub := &stubGeocoder{err: errors.New("network down")}
		service := NewGeometryService(stub, 17)

		start, finish := service.EndpointNames(context.Background(), line)
		assert.Equal(t, StartLabel, start)
		assert.Equal(t, FinishLabel, finish)
	})

	t.Run("EmptyAddressFallsBack", func(t *testing.T) {
		stub := &stubGeocoder{}
		service := NewGeometryService(stub, 17)

		start, finish := service.EndpointNames(context.Background(), line)
		assert.Equal(t, StartLabel, start)
		assert.Equal(t, FinishLabel, finish)
	})

	t.Run("TooShortLineSkipsLookup", func(t *testing.T) {
		stub := &stubGeocoder{}
		service := NewGeometryService(stub, 17)

		start, finish := service.EndpointNames(context.Background(), models.LineString{{14.42, 50.08}})
		assert.Equal(t, StartLabel, start)
		assert.Equal(t, FinishLabel, finish)
		assert.Zero(t, stub.calls)
	})
}

func TestDrawHistoryUndoFloor(t *testing.T) {
	history := NewDrawHistory()
	require.Equal(t, 1, history.Len())

	assert.Nil(t, history.Undo())
	assert.Equal(t, 1, history.Len())
}

func TestDrawHistoryUndoRestoresPriorState(t *testing.T) {
	history := NewDrawHistory()

	a := models.LineString{{14.42, 50.08}}
	b := models.LineString{{14.42, 50.08}, {14.46, 50.1}}
	history.Push(a)
	history.Push(b)
	require.Equal(t, 3, history.Len())

	restored := history.Undo()
	require.NotNil(t, restored)
	assert.Equal(t, a, restored)
	assert.Equal(t, 2, history.Len())
}

func TestDrawHistoryStoresCopies(t *testing.T) {
	history := NewDrawHistory()

	line := models.LineString{{14.42, 50.08}}
	history.Push(line)
	line[0][0] = 99

	assert.Equal(t, models.LineString{{14.42, 50.08}}, history.Top())
}

func TestDrawHistorySeedSentinel(t *testing.T) {
	history := NewDrawHistory()
	assert.Equal(t, models.LineString{{0, 0}}, history.Top())
}
