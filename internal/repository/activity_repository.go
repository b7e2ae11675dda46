package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/database"
	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// territoryChunkSize bounds cells per activity-territory row, keeping each
// row small enough for the client mini-map to page through
const territoryChunkSize = 200

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new activity in pending state
func (r *ActivityRepository) Create(a *models.Activity) error {
	_, err := r.db.Exec(`
		INSERT INTO activities (activity_id, user_id, activity_type, distance_meters, duration_seconds,
			calories, average_heart_rate, location_label, end_date, processing_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, strftime('%s','now'))`,
		a.ID, a.UserID, string(a.Type), a.DistanceMeters, a.DurationSeconds,
		a.Calories, a.AverageHeartRate, a.LocationLabel, a.EndDate.Unix(), a.ProcessingStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// Get retrieves an activity with its processing results, nil when absent
func (r *ActivityRepository) Get(activityID string) (*models.Activity, error) {
	var a models.Activity
	var activityType string
	var endDate int64
	var breakdownJSON, missionsJSON, statsJSON sql.NullString

	err := r.db.QueryRow(`
		SELECT activity_id, user_id, activity_type, distance_meters, duration_seconds,
			calories, average_heart_rate, location_label, end_date, processing_status,
			xp_breakdown, missions, territory_stats, territory_cell_count
		FROM activities WHERE activity_id = ?`, activityID).Scan(
		&a.ID, &a.UserID, &activityType, &a.DistanceMeters, &a.DurationSeconds,
		&a.Calories, &a.AverageHeartRate, &a.LocationLabel, &endDate, &a.ProcessingStatus,
		&breakdownJSON, &missionsJSON, &statsJSON, &a.TerritoryCellCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	a.Type = models.ActivityType(activityType)
	a.EndDate = time.Unix(endDate, 0).UTC()

	if breakdownJSON.Valid && breakdownJSON.String != "" {
		var b models.XPBreakdown
		if err := json.Unmarshal([]byte(breakdownJSON.String), &b); err == nil {
			a.XPBreakdown = &b
		}
	}
	if missionsJSON.Valid && missionsJSON.String != "" {
		_ = json.Unmarshal([]byte(missionsJSON.String), &a.Missions)
	}
	if statsJSON.Valid && statsJSON.String != "" {
		var s models.TerritoryStats
		if err := json.Unmarshal([]byte(statsJSON.String), &s); err == nil {
			a.TerritoryStats = &s
		}
	}
	return &a, nil
}

// SetStatus updates only the processing status
func (r *ActivityRepository) SetStatus(activityID, status string) error {
	_, err := r.db.Exec("UPDATE activities SET processing_status = ? WHERE activity_id = ?", status, activityID)
	if err != nil {
		return fmt.Errorf("failed to set activity status: %w", err)
	}
	return nil
}

// SaveResults stores the processing outcome on the activity row and flips
// it to completed
func (r *ActivityRepository) SaveResults(activityID string, breakdown models.XPBreakdown, missions []models.Mission, stats models.TerritoryStats, cellCount int) error {
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	missionsJSON, err := json.Marshal(missions)
	if err != nil {
		return fmt.Errorf("failed to marshal missions: %w", err)
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE activities SET xp_breakdown = ?, missions = ?, territory_stats = ?,
			territory_cell_count = ?, processing_status = ?
		WHERE activity_id = ?`,
		string(breakdownJSON), string(missionsJSON), string(statsJSON),
		cellCount, models.StatusCompleted, activityID,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity results: %w", err)
	}
	return nil
}

// SaveTerritories persists the activity's rasterized cells in chunked rows
// for the client mini-map, replacing any previous chunks
func (r *ActivityRepository) SaveTerritories(activityID string, cells []models.Cell) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM activity_territories WHERE activity_id = ?", activityID); err != nil {
			return fmt.Errorf("failed to clear activity territories: %w", err)
		}

		for start, order := 0, 0; start < len(cells); start, order = start+territoryChunkSize, order+1 {
			end := start + territoryChunkSize
			if end > len(cells) {
				end = len(cells)
			}
			slice := cells[start:end]

			cellsJSON, err := json.Marshal(slice)
			if err != nil {
				return fmt.Errorf("failed to marshal territory chunk: %w", err)
			}
			if _, err := tx.Exec(`
				INSERT INTO activity_territories (activity_id, chunk_order, cell_count, cells)
				VALUES (?, ?, ?, ?)`,
				activityID, order, len(slice), string(cellsJSON),
			); err != nil {
				return fmt.Errorf("failed to insert territory chunk: %w", err)
			}
		}
		return nil
	})
}

// GetTerritories reassembles the activity's cells from its chunk rows
func (r *ActivityRepository) GetTerritories(activityID string) ([]models.Cell, error) {
	rows, err := r.db.Query(
		"SELECT cells FROM activity_territories WHERE activity_id = ? ORDER BY chunk_order",
		activityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity territories: %w", err)
	}
	defer rows.Close()

	var cells []models.Cell
	for rows.Next() {
		var chunkJSON string
		if err := rows.Scan(&chunkJSON); err != nil {
			return nil, fmt.Errorf("failed to scan territory chunk: %w", err)
		}
		var chunk []models.Cell
		if err := json.Unmarshal([]byte(chunkJSON), &chunk); err != nil {
			return nil, fmt.Errorf("failed to unmarshal territory chunk: %w", err)
		}
		cells = append(cells, chunk...)
	}
	return cells, rows.Err()
}
