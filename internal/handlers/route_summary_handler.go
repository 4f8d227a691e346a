package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commutelog/commute-backend/internal/models"
	"github.com/commutelog/commute-backend/internal/services"
	"github.com/commutelog/commute-backend/pkg/validator"
)

// RouteSummaryHandler measures a drawn polyline and names its endpoints.
type RouteSummaryHandler struct {
	geometryService *services.GeometryService
	coordValidator  *validator.CoordinateValidator
}

func NewRouteSummaryHandler(geometryService *services.GeometryService) *RouteSummaryHandler {
	return &RouteSummaryHandler{
		geometryService: geometryService,
		coordValidator:  validator.NewCoordinateValidator(),
	}
}

type routeSummaryRequest struct {
	Vertices [][2]float64 `json:"vertices" binding:"required"`
}

type routeSummaryResponse struct {
	Length      float64              `json:"length"`
	LengthLabel string               `json:"length_label"`
	Markers     services.RouteMarkers `json:"markers"`
	Center      services.ViewFit     `json:"center"`
	StartName   string               `json:"start_name"`
	FinishName  string               `json:"finish_name"`
}

// Summarize measures a vertex list and reverse-geocodes its endpoints
// POST /api/v1/routes/summary
func (h *RouteSummaryHandler) Summarize(c *gin.Context) {
	var req routeSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "INVALID_REQUEST"})
		return
	}

	if err := h.coordValidator.ValidateVertices(req.Vertices); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_COORDINATES"})
		return
	}

	line := models.LineString(req.Vertices)
	startName, finishName := h.geometryService.EndpointNames(c.Request.Context(), line)

	c.JSON(http.StatusOK, routeSummaryResponse{
		Length:      h.geometryService.Length(line),
		LengthLabel: h.geometryService.LengthLabel(line),
		Markers:     h.geometryService.Markers(line),
		Center:      h.geometryService.CenterView(line),
		StartName:   startName,
		FinishName:  finishName,
	})
}
