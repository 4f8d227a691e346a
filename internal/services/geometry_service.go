package services

import (
	"context"
	"math"
	"strconv"

	"github.com/commutelog/commute-backend/internal/models"
	"github.com/commutelog/commute-backend/pkg/geocoder"
)

const (
	// mean Earth radius in km
	earthRadiusKm = 6371.0088

	// lengthDisplayScale is applied to the computed length before display.
	// The resulting magnitude is what the frontend has always shown; kept
	// as-is until the unit question is settled.
	lengthDisplayScale = 100

	lengthUnitSuffix = " km"

	// StartLabel and FinishLabel are the fallback endpoint names used when
	// a drawn line cannot be reverse-geocoded
	StartLabel  = "Start"
	FinishLabel = "Finish"
)

// GeometryService measures, styles and annotates drawn route polylines
type GeometryService struct {
	geocoder geocoder.Client
	maxZoom  float64
}

// NewGeometryService creates a new GeometryService. maxZoom caps view
// centering so short routes are not over-zoomed.
func NewGeometryService(geocoderClient geocoder.Client, maxZoom float64) *GeometryService {
	return &GeometryService{
		geocoder: geocoderClient,
		maxZoom:  maxZoom,
	}
}

// Length returns the great-circle length of the line in kilometers.
// Lines with fewer than two vertices have length zero.
func (s *GeometryService) Length(line models.LineString) float64 {
	if len(line) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(line); i++ {
		total += haversine(line[i-1][1], line[i-1][0], line[i][1], line[i][0])
	}
	return total
}

// LengthLabel returns the display value for the line's length: the computed
// length scaled by 100 and rounded, with a fixed unit suffix. Both the live
// drawing tooltip and the final route label use this same transform.
func (s *GeometryService) LengthLabel(line models.LineString) string {
	scaled := int(math.Round(s.Length(line) * lengthDisplayScale))
	return strconv.Itoa(scaled) + lengthUnitSuffix
}

// RouteMarkers holds the marker geometries derived from a drawn line
type RouteMarkers struct {
	Vertices models.LineString `json:"vertices"`
	Start    *[2]float64       `json:"start,omitempty"`
	End      *[2]float64       `json:"end,omitempty"`
}

// Markers derives the dot, start and end marker geometries from a line
func (s *GeometryService) Markers(line models.LineString) RouteMarkers {
	markers := RouteMarkers{Vertices: line.Clone()}
	if first, ok := line.First(); ok {
		markers.Start = &first
	}
	if last, ok := line.Last(); ok {
		markers.End = &last
	}
	return markers
}

// ViewFit is a map view centered on a line's bounding extent
type ViewFit struct {
	Center [2]float64 `json:"center"`
	Zoom   float64    `json:"zoom"`
}

// CenterView fits a view to the line's bounding extent, capping zoom at the
// configured maximum so degenerate extents stay usable.
func (s *GeometryService) CenterView(line models.LineString) ViewFit {
	if len(line) == 0 {
		return ViewFit{Zoom: s.maxZoom}
	}

	minLon, minLat := line[0][0], line[0][1]
	maxLon, maxLat := minLon, minLat
	for _, vertex := range line[1:] {
		minLon = math.Min(minLon, vertex[0])
		maxLon = math.Max(maxLon, vertex[0])
		minLat = math.Min(minLat, vertex[1])
		maxLat = math.Max(maxLat, vertex[1])
	}

	fit := ViewFit{
		Center: [2]float64{(minLon + maxLon) / 2, (minLat + maxLat) / 2},
		Zoom:   s.maxZoom,
	}

	span := math.Max(maxLon-minLon, maxLat-minLat)
	if span > 0 {
		zoom := math.Floor(math.Log2(360 / span))
		fit.Zoom = math.Min(zoom, s.maxZoom)
	}
	return fit
}

// EndpointNames reverse-geocodes the first and last vertex of the line into
// place names. Geocoding is best effort: any failure, or a line too short to
// read, falls back to the generic labels without blocking the drawing flow.
func (s *GeometryService) EndpointNames(ctx context.Context, line models.LineString) (string, string) {
	start, finish := StartLabel, FinishLabel
	if len(line) < 2 || s.geocoder == nil {
		return start, finish
	}

	if name := s.lookupName(ctx, line[0]); name != "" {
		start = name
	}
	if name := s.lookupName(ctx, line[len(line)-1]); name != "" {
		finish = name
	}
	return start, finish
}

func (s *GeometryService) lookupName(ctx context.Context, vertex [2]float64) string {
	address, err := s.geocoder.Reverse(ctx, vertex[0], vertex[1])
	if err != nil {
		return ""
	}
	return address.PlaceName()
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
