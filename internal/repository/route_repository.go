package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/adventurestreak/territory-backend-go/internal/database"
	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// routeChunkSize bounds points per stored route chunk
const routeChunkSize = 500

// RouteRepository stores activity routes as ordered, zstd-compressed
// point chunks
type RouteRepository struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *sql.DB) (*RouteRepository, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &RouteRepository{db: db, enc: enc, dec: dec}, nil
}

// Save replaces the stored route for an activity
func (r *RouteRepository) Save(activityID string, points []models.RoutePoint) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM activity_routes WHERE activity_id = ?", activityID); err != nil {
			return fmt.Errorf("failed to clear route: %w", err)
		}

		for start, order := 0, 0; start < len(points); start, order = start+routeChunkSize, order+1 {
			end := start + routeChunkSize
			if end > len(points) {
				end = len(points)
			}
			slice := points[start:end]

			raw, err := json.Marshal(slice)
			if err != nil {
				return fmt.Errorf("failed to marshal route chunk: %w", err)
			}
			blob := r.enc.EncodeAll(raw, nil)

			if _, err := tx.Exec(`
				INSERT INTO activity_routes (activity_id, chunk_order, point_count, points)
				VALUES (?, ?, ?, ?)`,
				activityID, order, len(slice), blob,
			); err != nil {
				return fmt.Errorf("failed to insert route chunk: %w", err)
			}
		}
		return nil
	})
}

// Load reassembles the ordered route for an activity. A missing route
// yields an empty slice; that is a valid case, not an error.
func (r *RouteRepository) Load(activityID string) ([]models.RoutePoint, error) {
	rows, err := r.db.Query(
		"SELECT points FROM activity_routes WHERE activity_id = ? ORDER BY chunk_order",
		activityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query route: %w", err)
	}
	defer rows.Close()

	var points []models.RoutePoint
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("failed to scan route chunk: %w", err)
		}
		raw, err := r.dec.DecodeAll(blob, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress route chunk: %w", err)
		}
		var chunk []models.RoutePoint
		if err := json.Unmarshal(raw, &chunk); err != nil {
			return nil, fmt.Errorf("failed to unmarshal route chunk: %w", err)
		}
		points = append(points, chunk...)
	}
	return points, rows.Err()
}
