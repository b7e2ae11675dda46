package models

// XPConfig is an immutable scoring configuration snapshot. A fresh copy is
// supplied per invocation; the engine never mutates it.
type XPConfig struct {
	// Qualification thresholds
	MinDistanceKm      float64 `json:"minDistanceKm" yaml:"min_distance_km"`
	MinDurationSeconds float64 `json:"minDurationSeconds" yaml:"min_duration_seconds"`

	// Base XP
	BaseFactorPerKm   float64 `json:"baseFactorPerKm" yaml:"base_factor_per_km"`
	FactorRun         float64 `json:"factorRun" yaml:"factor_run"`
	FactorBike        float64 `json:"factorBike" yaml:"factor_bike"`
	FactorWalk        float64 `json:"factorWalk" yaml:"factor_walk"`
	FactorOther       float64 `json:"factorOther" yaml:"factor_other"`
	FactorIndoor      float64 `json:"factorIndoor" yaml:"factor_indoor"`
	IndoorXPPerMinute float64 `json:"indoorXPPerMinute" yaml:"indoor_xp_per_minute"`
	DailyBaseXPCap    int     `json:"dailyBaseXPCap" yaml:"daily_base_xp_cap"`

	// Territory XP
	XPPerNewCell             int `json:"xpPerNewCell" yaml:"xp_per_new_cell"`
	XPPerDefendedCell        int `json:"xpPerDefendedCell" yaml:"xp_per_defended_cell"`
	XPPerRecapturedCell      int `json:"xpPerRecapturedCell" yaml:"xp_per_recaptured_cell"`
	MaxNewCellsXPPerActivity int `json:"maxNewCellsXPPerActivity" yaml:"max_new_cells_xp_per_activity"`

	// Bonuses
	BaseStreakXPPerWeek     int     `json:"baseStreakXPPerWeek" yaml:"base_streak_xp_per_week"`
	WeeklyRecordBaseXP      int     `json:"weeklyRecordBaseXP" yaml:"weekly_record_base_xp"`
	WeeklyRecordPerKmDiffXP float64 `json:"weeklyRecordPerKmDiffXP" yaml:"weekly_record_per_km_diff_xp"`
	MinWeeklyRecordKm       float64 `json:"minWeeklyRecordKm" yaml:"min_weekly_record_km"`

	// Mission thresholds
	LegendaryThresholdCells int `json:"legendaryThresholdCells" yaml:"legendary_threshold_cells"`
}

// DefaultXPConfig returns the documented default scoring configuration,
// used whenever no stored snapshot is available.
func DefaultXPConfig() XPConfig {
	return XPConfig{
		MinDistanceKm:      0.5,
		MinDurationSeconds: 5 * 60,

		BaseFactorPerKm:   10.0,
		FactorRun:         1.2,
		FactorBike:        0.7,
		FactorWalk:        0.9,
		FactorOther:       1.0,
		FactorIndoor:      0.5,
		IndoorXPPerMinute: 3.0,
		DailyBaseXPCap:    300,

		XPPerNewCell:             8,
		XPPerDefendedCell:        3,
		XPPerRecapturedCell:      12,
		MaxNewCellsXPPerActivity: 50,

		BaseStreakXPPerWeek: 10,

		WeeklyRecordBaseXP:      30,
		WeeklyRecordPerKmDiffXP: 5,
		MinWeeklyRecordKm:       5.0,

		LegendaryThresholdCells: 20,
	}
}

// XPBreakdown is the result of scoring one activity. Total always equals
// the sum of the five components.
type XPBreakdown struct {
	XPBase         int `json:"xpBase"`
	XPTerritory    int `json:"xpTerritory"`
	XPStreak       int `json:"xpStreak"`
	XPWeeklyRecord int `json:"xpWeeklyRecord"`
	XPBadges       int `json:"xpBadges"`
	Total          int `json:"total"`
}

// UserContext is a read-only snapshot of per-user state needed for scoring.
// The engine computes new values from it but never writes them back itself.
type UserContext struct {
	UserID                string  `json:"user_id"`
	CurrentWeekDistanceKm float64 `json:"current_week_distance_km"`
	BestWeeklyDistanceKm  float64 `json:"best_weekly_distance_km"` // 0 when no record yet
	CurrentStreakWeeks    int     `json:"current_streak_weeks"`
	TodayBaseXPEarned     int     `json:"today_base_xp_earned"`
	TotalXP               int     `json:"total_xp"`
	Level                 int     `json:"level"`
}
