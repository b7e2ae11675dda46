package models

import "time"

// ActivityType is the closed set of recorded activity kinds
type ActivityType string

const (
	ActivityRun          ActivityType = "run"
	ActivityBike         ActivityType = "bike"
	ActivityWalk         ActivityType = "walk"
	ActivityHike         ActivityType = "hike"
	ActivityOtherOutdoor ActivityType = "otherOutdoor"
	ActivityIndoor       ActivityType = "indoor"
)

// ValidActivityType reports whether t is one of the known activity kinds
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityRun, ActivityBike, ActivityWalk, ActivityHike, ActivityOtherOutdoor, ActivityIndoor:
		return true
	}
	return false
}

// Processing status values for an activity
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Activity is a recorded workout, constructed and validated at the API
// boundary. The engine never operates on loosely-typed payloads.
type Activity struct {
	ID               string       `json:"id" db:"activity_id"`
	UserID           string       `json:"user_id" db:"user_id"`
	Type             ActivityType `json:"activity_type" db:"activity_type"`
	DistanceMeters   float64      `json:"distance_meters" db:"distance_meters"`
	DurationSeconds  float64      `json:"duration_seconds" db:"duration_seconds"`
	Calories         float64      `json:"calories,omitempty" db:"calories"`
	AverageHeartRate float64      `json:"average_heart_rate,omitempty" db:"average_heart_rate"`
	LocationLabel    string       `json:"location_label,omitempty" db:"location_label"`
	EndDate          time.Time    `json:"end_date" db:"end_date"`
	ProcessingStatus string       `json:"processing_status" db:"processing_status"`

	// Results, populated once processing completes
	XPBreakdown        *XPBreakdown    `json:"xp_breakdown,omitempty" db:"-"`
	Missions           []Mission       `json:"missions,omitempty" db:"-"`
	TerritoryStats     *TerritoryStats `json:"territory_stats,omitempty" db:"-"`
	TerritoryCellCount int             `json:"territory_cell_count,omitempty" db:"territory_cell_count"`
}

// DistanceKm returns the activity distance in kilometers
func (a *Activity) DistanceKm() float64 {
	return a.DistanceMeters / 1000.0
}

// RoutePoint is one timestamped GPS sample of an activity route.
// Points are supplied in temporal order by the recorder; the engine does
// not sort or validate monotonicity.
type RoutePoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}
