package services

import (
	"time"

	"github.com/commutelog/commute-backend/internal/models"
)

// PhaseWindowService computes the date range in which route logging is
// permitted, clamping the rolling "days active" window to the competition
// phase boundaries.
type PhaseWindowService struct {
	phases     []models.Phase
	daysActive int
	now        func() time.Time
}

// NewPhaseWindowService creates a new PhaseWindowService. The clock is
// injected so window computations stay testable.
func NewPhaseWindowService(phases []models.Phase, daysActive int, now func() time.Time) *PhaseWindowService {
	if now == nil {
		now = time.Now
	}
	return &PhaseWindowService{
		phases:     phases,
		daysActive: daysActive,
		now:        now,
	}
}

// CompetitionPhaseFrom returns the raw competition phase start, or nil when
// the phase is absent or its date is malformed.
func (s *PhaseWindowService) CompetitionPhaseFrom() *time.Time {
	phase := models.FindPhase(s.phases, models.PhaseCompetition)
	if phase == nil {
		return nil
	}
	from, ok := phase.FromDate()
	if !ok {
		return nil
	}
	return &from
}

// CompetitionPhaseTo returns the raw competition phase end, or nil when the
// phase is absent or its date is malformed.
func (s *PhaseWindowService) CompetitionPhaseTo() *time.Time {
	phase := models.FindPhase(s.phases, models.PhaseCompetition)
	if phase == nil {
		return nil
	}
	to, ok := phase.ToDate()
	if !ok {
		return nil
	}
	return &to
}

// LoggingStart returns the first day on which logging is permitted.
//
// The naive window start is today - (daysActive - 1). When the competition
// phase start is known and falls after that, the phase start wins; the
// window is never wider than daysActive days.
func (s *PhaseWindowService) LoggingStart() *time.Time {
	today := models.DayOf(s.now())
	windowStart := today.AddDate(0, 0, -(s.daysActive - 1))

	phaseFrom := s.CompetitionPhaseFrom()
	if phaseFrom == nil || windowStart.After(*phaseFrom) {
		return &windowStart
	}
	start := models.DayOf(*phaseFrom)
	return &start
}

// LoggingEnd returns the last day on which logging is permitted: today,
// clamped to the competition phase end when the phase is known.
func (s *PhaseWindowService) LoggingEnd() *time.Time {
	today := models.DayOf(s.now())

	phaseTo := s.CompetitionPhaseTo()
	if phaseTo == nil || today.Before(*phaseTo) {
		return &today
	}
	end := models.DayOf(*phaseTo)
	return &end
}
