package models

import "time"

// Interaction labels the outcome of resolving one cell against its stored owner
type Interaction string

const (
	InteractionConquest  Interaction = "conquest"
	InteractionDefense   Interaction = "defense"
	InteractionSteal     Interaction = "steal"
	InteractionRecapture Interaction = "recapture"
)

// LatLng is a geographic coordinate in degrees
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Cell represents one grid cell of the territory lattice, the unit of ownership
type Cell struct {
	// Grid identification
	ID string `json:"id" db:"cell_id"` // Format: "{x}_{y}"

	// Geometry (derived from the grid index, never stored independently)
	CenterLatitude  float64  `json:"center_latitude" db:"center_lat"`
	CenterLongitude float64  `json:"center_longitude" db:"center_lon"`
	Boundary        []LatLng `json:"boundary" db:"-"` // TL, TR, BR, BL corners

	// Ownership
	ExpiresAt       time.Time   `json:"expires_at" db:"expires_at"`
	LastConqueredAt time.Time   `json:"last_conquered_at" db:"last_conquered_at"`
	UserID          string      `json:"user_id" db:"user_id"`
	ActivityID      string      `json:"activity_id,omitempty" db:"activity_id"`
	LastInteraction Interaction `json:"last_interaction,omitempty" db:"last_interaction"`
}

// IsExpiredAt reports whether ownership has lapsed relative to the given
// reference time. Expiration is evaluated against an activity's end time,
// never against the wall clock, so backfilled runs stay reproducible.
func (c *Cell) IsExpiredAt(ref time.Time) bool {
	return c.ExpiresAt.Before(ref)
}

// CellHistoryEntry is one append-only ownership-change record for a cell
type CellHistoryEntry struct {
	CellID          string      `json:"cell_id" db:"cell_id"`
	UserID          string      `json:"user_id" db:"user_id"`
	ActivityID      string      `json:"activity_id,omitempty" db:"activity_id"`
	Interaction     Interaction `json:"interaction" db:"interaction"`
	PreviousOwnerID string      `json:"previous_owner_id,omitempty" db:"previous_owner_id"`
	Timestamp       time.Time   `json:"timestamp" db:"timestamp"`
}
