package database

import (
	"fmt"
	"time"

	"github.com/commutelog/commute-backend/internal/models"
	"github.com/google/uuid"
)

// TripRepository handles database operations for the trips table
type TripRepository struct {
	db DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db DB) *TripRepository {
	return &TripRepository{db: db}
}

// GetByUserAndDateRange retrieves a user's trips within a date range,
// most recent first
func (r *TripRepository) GetByUserAndDateRange(userID, campaignID string, startDate, endDate time.Time) ([]models.Trip, error) {
	query := `
		SELECT id, user_id, campaign_id, trip_date, direction, transport,
			   distance, input_type, route_geometry, created_at, updated_at
		FROM trips
		WHERE user_id = $1 AND campaign_id = $2 AND trip_date BETWEEN $3 AND $4
		ORDER BY trip_date DESC, direction
	`

	rows, err := r.db.Query(query, userID, campaignID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(
			&trip.ID, &trip.UserID, &trip.CampaignID, &trip.TripDate,
			&trip.Direction, &trip.Transport, &trip.Distance, &trip.InputType,
			&trip.RouteGeometry, &trip.CreatedAt, &trip.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// Upsert inserts a trip, replacing the existing record for the same
// (user, campaign, date, direction) cell
func (r *TripRepository) Upsert(trip *models.Trip) error {
	query := `
		INSERT INTO trips (
			id, user_id, campaign_id, trip_date, direction, transport,
			distance, input_type, route_geometry
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, campaign_id, trip_date, direction) DO UPDATE SET
			transport = EXCLUDED.transport,
			distance = EXCLUDED.distance,
			input_type = EXCLUDED.input_type,
			route_geometry = EXCLUDED.route_geometry,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		trip.ID, trip.UserID, trip.CampaignID, trip.TripDate, trip.Direction,
		trip.Transport, trip.Distance, trip.InputType, trip.RouteGeometry,
	).Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert trip: %w", err)
	}

	return nil
}

// UpsertBatch upserts a set of trips one by one. The caller has already
// de-duplicated them by (date, direction).
func (r *TripRepository) UpsertBatch(trips []models.Trip) error {
	for i := range trips {
		if err := r.Upsert(&trips[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeleteByCell removes the trip logged for a single calendar cell
func (r *TripRepository) DeleteByCell(userID, campaignID string, tripDate time.Time, direction models.TransportDirection) error {
	query := `
		DELETE FROM trips
		WHERE user_id = $1 AND campaign_id = $2 AND trip_date = $3 AND direction = $4
	`

	if _, err := r.db.Exec(query, userID, campaignID, tripDate, direction); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

// CountByUser returns the number of trips a user has logged in a campaign
func (r *TripRepository) CountByUser(userID, campaignID string) (int64, error) {
	query := `SELECT COUNT(*) FROM trips WHERE user_id = $1 AND campaign_id = $2`

	var count int64
	if err := r.db.QueryRow(query, userID, campaignID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return count, nil
}
