package database

import (
	"fmt"

	"github.com/commutelog/commute-backend/internal/models"
)

// CampaignRepository handles database operations for campaigns and their phases
type CampaignRepository struct {
	db DB
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(campaignID string) (*models.Campaign, error) {
	query := `
		SELECT id, slug, title, days_active, created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`

	var campaign models.Campaign
	err := r.db.QueryRow(query, campaignID).Scan(
		&campaign.ID, &campaign.Slug, &campaign.Title,
		&campaign.DaysActive, &campaign.CreatedAt, &campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &campaign, nil
}

// GetPhases retrieves the configured phases of a campaign. Phase dates are
// stored as the same YYYY-MM-DD strings the campaign configuration supplies;
// validation happens downstream in the window resolver.
func (r *CampaignRepository) GetPhases(campaignID string) ([]models.Phase, error) {
	query := `
		SELECT phase_type, date_from, date_to
		FROM campaign_phases
		WHERE campaign_id = $1
		ORDER BY date_from
	`

	rows, err := r.db.Query(query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign phases: %w", err)
	}
	defer rows.Close()

	phases := []models.Phase{}
	for rows.Next() {
		var phase models.Phase
		if err := rows.Scan(&phase.Type, &phase.DateFrom, &phase.DateTo); err != nil {
			return nil, fmt.Errorf("failed to scan campaign phase: %w", err)
		}
		phases = append(phases, phase)
	}

	return phases, rows.Err()
}
