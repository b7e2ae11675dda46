package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// ConfigRepository loads the scoring configuration snapshot from the
// key/value config table. A missing or partial table degrades to the
// documented defaults; it is never fatal.
type ConfigRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetXPConfig returns the stored snapshot layered over the defaults.
// The returned config is always usable, even when err is non-nil.
func (r *ConfigRepository) GetXPConfig() (models.XPConfig, error) {
	cfg := models.DefaultXPConfig()

	rows, err := r.db.Query("SELECT key, value FROM xp_config")
	if err != nil {
		return cfg, fmt.Errorf("failed to query xp config: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return cfg, fmt.Errorf("failed to scan xp config row: %w", err)
		}
		applyXPConfigKey(&cfg, key, value)
	}
	if err := rows.Err(); err != nil {
		return cfg, fmt.Errorf("failed to read xp config: %w", err)
	}
	return cfg, nil
}

func applyXPConfigKey(cfg *models.XPConfig, key string, value float64) {
	switch key {
	case "minDistanceKm":
		cfg.MinDistanceKm = value
	case "minDurationSeconds":
		cfg.MinDurationSeconds = value
	case "baseFactorPerKm":
		cfg.BaseFactorPerKm = value
	case "factorRun":
		cfg.FactorRun = value
	case "factorBike":
		cfg.FactorBike = value
	case "factorWalk":
		cfg.FactorWalk = value
	case "factorOther":
		cfg.FactorOther = value
	case "factorIndoor":
		cfg.FactorIndoor = value
	case "indoorXPPerMinute":
		cfg.IndoorXPPerMinute = value
	case "dailyBaseXPCap":
		cfg.DailyBaseXPCap = int(value)
	case "xpPerNewCell":
		cfg.XPPerNewCell = int(value)
	case "xpPerDefendedCell":
		cfg.XPPerDefendedCell = int(value)
	case "xpPerRecapturedCell":
		cfg.XPPerRecapturedCell = int(value)
	case "maxNewCellsXPPerActivity":
		cfg.MaxNewCellsXPPerActivity = int(value)
	case "baseStreakXPPerWeek":
		cfg.BaseStreakXPPerWeek = int(value)
	case "weeklyRecordBaseXP":
		cfg.WeeklyRecordBaseXP = int(value)
	case "weeklyRecordPerKmDiffXP":
		cfg.WeeklyRecordPerKmDiffXP = value
	case "minWeeklyRecordKm":
		cfg.MinWeeklyRecordKm = value
	case "legendaryThresholdCells":
		cfg.LegendaryThresholdCells = int(value)
	default:
		log.Printf("[Config] Ignoring unknown xp config key: %s", key)
	}
}
