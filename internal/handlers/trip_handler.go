package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commutelog/commute-backend/internal/database"
	"github.com/commutelog/commute-backend/internal/middleware"
	"github.com/commutelog/commute-backend/internal/models"
	"github.com/commutelog/commute-backend/internal/services"
	"github.com/commutelog/commute-backend/pkg/validator"
)

// TripHandler exposes the logged-route store over HTTP.
type TripHandler struct {
	tripRepo          *database.TripRepository
	dateValidator     *validator.CoordinateValidator
	defaultCampaignID string
	defaultRangeDays  int
	now               func() time.Time
}

func NewTripHandler(tripRepo *database.TripRepository, defaultCampaignID string, defaultRangeDays int) *TripHandler {
	return &TripHandler{
		tripRepo:          tripRepo,
		dateValidator:     validator.NewCoordinateValidator(),
		defaultCampaignID: defaultCampaignID,
		defaultRangeDays:  defaultRangeDays,
		now:               time.Now,
	}
}

func (h *TripHandler) campaignID(userCtx middleware.UserContext) string {
	if userCtx.CampaignID != "" {
		return userCtx.CampaignID
	}
	return h.defaultCampaignID
}

// GetTrips lists the participant's logged routes in a date range
// GET /api/v1/trips?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *TripHandler) GetTrips(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	end := models.DayOf(h.now())
	start := end.AddDate(0, 0, -h.defaultRangeDays)

	if raw := c.Query("from"); raw != "" {
		parsed, err := h.dateValidator.ValidateDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date", "code": "INVALID_DATE"})
			return
		}
		start = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := h.dateValidator.ValidateDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date", "code": "INVALID_DATE"})
			return
		}
		end = parsed
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Range end precedes start", "code": "INVALID_RANGE"})
		return
	}

	trips, err := h.tripRepo.GetByUserAndDateRange(userCtx.UserID.String(), h.campaignID(userCtx), start, end)
	if err != nil {
		logrus.WithError(err).Error("Failed to load trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trips"})
		return
	}

	routes := make([]models.RouteItem, 0, len(trips))
	for i := range trips {
		routes = append(routes, trips[i].ToRouteItem())
	}

	c.JSON(http.StatusOK, gin.H{
		"routes": routes,
		"count":  len(routes),
	})
}

type submitTripsRequest struct {
	Routes []models.SubmitTripRequest `json:"routes" binding:"required"`
}

// SubmitTrips persists a batch of edited routes. A submitted route whose
// fields and geometry match the stored row for its (date, direction) cell
// is skipped rather than rewritten.
// POST /api/v1/trips
func (h *TripHandler) SubmitTrips(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req submitTripsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "INVALID_REQUEST"})
		return
	}
	if len(req.Routes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No routes submitted", "code": "EMPTY_SUBMISSION"})
		return
	}

	items := make([]models.RouteItem, 0, len(req.Routes))
	for i := range req.Routes {
		if err := req.Routes[i].Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_ROUTE"})
			return
		}
		items = append(items, req.Routes[i].ToRouteItem())
	}

	campaignID := h.campaignID(userCtx)
	start, end := submissionSpan(items)

	existingTrips, err := h.tripRepo.GetByUserAndDateRange(userCtx.UserID.String(), campaignID, start, end)
	if err != nil {
		logrus.WithError(err).Error("Failed to load existing trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load existing trips"})
		return
	}

	index := services.NewRouteIndex()
	existing := make([]models.RouteItem, 0, len(existingTrips))
	for i := range existingTrips {
		existing = append(existing, existingTrips[i].ToRouteItem())
	}
	index.Upsert(existing)

	changed := make([]models.RouteItem, 0, len(items))
	skipped := 0
	for _, item := range items {
		if prior, ok := findCell(existing, item); ok && unchangedRoute(prior, item) {
			skipped++
			continue
		}
		changed = append(changed, item)
	}
	index.Upsert(changed)

	trips := make([]models.Trip, 0, len(changed))
	for _, item := range changed {
		trips = append(trips, models.TripFromRouteItem(userCtx.UserID.String(), campaignID, item))
	}

	if err := h.tripRepo.UpsertBatch(trips); err != nil {
		logrus.WithError(err).Error("Failed to persist trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submitted": len(changed),
		"skipped":   skipped,
		"total":     index.Len(),
	})
}

// DeleteTrip clears a single (date, direction) cell
// DELETE /api/v1/trips/:date/:direction
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	date, err := h.dateValidator.ValidateDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "code": "INVALID_DATE"})
		return
	}

	direction := models.TransportDirection(c.Param("direction"))
	if direction != models.DirectionToWork && direction != models.DirectionFromWork {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Direction must be toWork or fromWork", "code": "INVALID_DIRECTION"})
		return
	}

	if err := h.tripRepo.DeleteByCell(userCtx.UserID.String(), h.campaignID(userCtx), date, direction); err != nil {
		logrus.WithError(err).Error("Failed to delete trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func submissionSpan(items []models.RouteItem) (time.Time, time.Time) {
	start := models.DayOf(items[0].Date)
	end := start
	for _, item := range items[1:] {
		day := models.DayOf(item.Date)
		if day.Before(start) {
			start = day
		}
		if day.After(end) {
			end = day
		}
	}
	return start, end
}

func findCell(existing []models.RouteItem, item models.RouteItem) (models.RouteItem, bool) {
	for i := range existing {
		if existing[i].MatchesCell(item.Date, item.Direction) {
			return existing[i], true
		}
	}
	return models.RouteItem{}, false
}

func unchangedRoute(prior, next models.RouteItem) bool {
	return prior.Transport == next.Transport &&
		prior.Distance == next.Distance &&
		prior.InputType == next.InputType &&
		services.CompareFeatures(prior.RouteFeature, next.RouteFeature)
}
