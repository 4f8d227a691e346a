package models

import "time"

// DateLayout is the calendar date format used for matrix keys and phase
// boundaries throughout the system. Day granularity, no timezone.
const DateLayout = "2006-01-02"

// PhaseType identifies a campaign phase
type PhaseType string

const (
	PhaseRegistration PhaseType = "registration"
	PhaseCompetition  PhaseType = "competition"
	PhaseEntry        PhaseType = "entry"
	PhaseResults      PhaseType = "results"
)

// Phase represents a named date range controlling what participants may do.
// Supplied by the campaign configuration and immutable once fetched.
type Phase struct {
	Type     PhaseType `json:"phase_type" db:"phase_type"`
	DateFrom string    `json:"date_from" db:"date_from"`
	DateTo   string    `json:"date_to" db:"date_to"`
}

// FromDate parses the phase start. Returns false when absent or malformed.
func (p *Phase) FromDate() (time.Time, bool) {
	return parseDay(p.DateFrom)
}

// ToDate parses the phase end. Returns false when absent or malformed.
func (p *Phase) ToDate() (time.Time, bool) {
	return parseDay(p.DateTo)
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FindPhase returns the first phase of the given type, or nil
func FindPhase(phases []Phase, phaseType PhaseType) *Phase {
	for i := range phases {
		if phases[i].Type == phaseType {
			return &phases[i]
		}
	}
	return nil
}

// Campaign represents a commute challenge campaign
type Campaign struct {
	ID         string    `json:"id" db:"id"`
	Slug       string    `json:"slug" db:"slug"`
	Title      string    `json:"title" db:"title"`
	DaysActive int       `json:"days_active" db:"days_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
