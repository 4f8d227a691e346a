package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commutelog/commute-backend/internal/database"
	"github.com/commutelog/commute-backend/internal/middleware"
	"github.com/commutelog/commute-backend/internal/models"
	"github.com/commutelog/commute-backend/internal/services"
)

// CalendarHandler resolves the logging window for a participant and
// returns the dense day matrices the calendar UI renders.
type CalendarHandler struct {
	campaignRepo      *database.CampaignRepository
	tripRepo          *database.TripRepository
	matrixService     *services.RouteMatrixService
	defaultCampaignID string
	now               func() time.Time
}

func NewCalendarHandler(
	campaignRepo *database.CampaignRepository,
	tripRepo *database.TripRepository,
	matrixService *services.RouteMatrixService,
	defaultCampaignID string,
) *CalendarHandler {
	return &CalendarHandler{
		campaignRepo:      campaignRepo,
		tripRepo:          tripRepo,
		matrixService:     matrixService,
		defaultCampaignID: defaultCampaignID,
		now:               time.Now,
	}
}

type calendarResponse struct {
	CampaignID    string            `json:"campaign_id"`
	PhaseFrom     *string           `json:"phase_from"`
	PhaseTo       *string           `json:"phase_to"`
	LoggingStart  *string           `json:"logging_start"`
	LoggingEnd    *string           `json:"logging_end"`
	LoggableDays  []models.RouteDay `json:"loggable_days"`
	PreWindowDays []models.RouteDay `json:"pre_window_days"`
	CalendarDays  []models.RouteDay `json:"calendar_days"`
}

// GetCalendar resolves the logging window and builds the day matrices
// GET /api/v1/calendar
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	campaignID := userCtx.CampaignID
	if campaignID == "" {
		campaignID = h.defaultCampaignID
	}

	campaign, err := h.campaignRepo.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		logrus.WithError(err).Error("Failed to load campaign")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load campaign"})
		return
	}

	phases, err := h.campaignRepo.GetPhases(campaignID)
	if err != nil {
		logrus.WithError(err).Error("Failed to load campaign phases")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load campaign phases"})
		return
	}

	window := services.NewPhaseWindowService(phases, campaign.DaysActive, h.now)
	loggingStart := window.LoggingStart()
	loggingEnd := window.LoggingEnd()
	phaseFrom := window.CompetitionPhaseFrom()
	phaseTo := window.CompetitionPhaseTo()

	rangeStart, rangeEnd := queryRange(loggingStart, loggingEnd, phaseFrom, phaseTo)
	trips, err := h.tripRepo.GetByUserAndDateRange(userCtx.UserID.String(), campaignID, rangeStart, rangeEnd)
	if err != nil {
		logrus.WithError(err).Error("Failed to load trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trips"})
		return
	}

	routes := make([]models.RouteItem, 0, len(trips))
	for i := range trips {
		routes = append(routes, trips[i].ToRouteItem())
	}

	c.JSON(http.StatusOK, calendarResponse{
		CampaignID:    campaignID,
		PhaseFrom:     dayString(phaseFrom),
		PhaseTo:       dayString(phaseTo),
		LoggingStart:  dayString(loggingStart),
		LoggingEnd:    dayString(loggingEnd),
		LoggableDays:  h.matrixService.LoggableDays(loggingStart, loggingEnd, routes),
		PreWindowDays: h.matrixService.PreWindowDays(phaseFrom, loggingStart, routes),
		CalendarDays:  h.matrixService.CompetitionDays(phaseFrom, phaseTo, routes),
	})
}

// queryRange widens the logging window to the full competition span so a
// single trip query covers every matrix.
func queryRange(loggingStart, loggingEnd, phaseFrom, phaseTo *time.Time) (time.Time, time.Time) {
	start := *loggingStart
	if phaseFrom != nil && phaseFrom.Before(start) {
		start = *phaseFrom
	}
	end := *loggingEnd
	if phaseTo != nil && phaseTo.After(end) {
		end = *phaseTo
	}
	return start, end
}

func dayString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(models.DateLayout)
	return &s
}
