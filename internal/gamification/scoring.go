package gamification

import (
	"math"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// ComputeXP scores one activity. Pure: identical inputs always yield an
// identical breakdown, and Total always equals the sum of the components.
func ComputeXP(activity models.Activity, stats models.TerritoryStats, ctx models.UserContext, cfg models.XPConfig) models.XPBreakdown {
	base := computeBaseXP(activity, ctx, cfg)
	territory := computeTerritoryXP(stats, cfg)
	streak := computeStreakBonus(activity, ctx, cfg)
	weekly := computeWeeklyRecordBonus(activity, ctx, cfg)

	// Badge XP is reserved for the external badge engine; always zero here.
	badges := 0

	return models.XPBreakdown{
		XPBase:         base,
		XPTerritory:    territory,
		XPStreak:       streak,
		XPWeeklyRecord: weekly,
		XPBadges:       badges,
		Total:          base + territory + streak + weekly + badges,
	}
}

// Level converts total XP to a level on the fixed, non-configurable curve
func Level(totalXP int) int {
	return 1 + totalXP/1000
}

func computeBaseXP(activity models.Activity, ctx models.UserContext, cfg models.XPConfig) int {
	distanceKm := activity.DistanceKm()
	duration := activity.DurationSeconds

	// Indoor activities score by minutes, never by distance
	if activity.Type == models.ActivityIndoor {
		if duration < cfg.MinDurationSeconds {
			return 0
		}
		raw := int(math.Floor(duration / 60.0 * cfg.IndoorXPPerMinute))
		return clampToDailyCap(raw, ctx, cfg)
	}

	if distanceKm < cfg.MinDistanceKm || duration < cfg.MinDurationSeconds {
		return 0
	}

	raw := int(math.Floor(distanceKm * cfg.BaseFactorPerKm * typeFactor(activity.Type, cfg)))
	return clampToDailyCap(raw, ctx, cfg)
}

// typeFactor looks up the per-activity-type multiplier. Hike shares walk's
// factor; an unknown type scores at 1.0.
func typeFactor(t models.ActivityType, cfg models.XPConfig) float64 {
	switch t {
	case models.ActivityRun:
		return cfg.FactorRun
	case models.ActivityBike:
		return cfg.FactorBike
	case models.ActivityWalk, models.ActivityHike:
		return cfg.FactorWalk
	case models.ActivityOtherOutdoor:
		return cfg.FactorOther
	case models.ActivityIndoor:
		return cfg.FactorIndoor
	}
	return 1.0
}

// clampToDailyCap enforces the daily base-XP cap against the caller-supplied
// running total for today. The cap is never recomputed internally.
func clampToDailyCap(raw int, ctx models.UserContext, cfg models.XPConfig) int {
	remaining := cfg.DailyBaseXPCap - ctx.TodayBaseXPEarned
	if remaining < 0 {
		remaining = 0
	}
	if raw > remaining {
		return remaining
	}
	return raw
}

func computeTerritoryXP(stats models.TerritoryStats, cfg models.XPConfig) int {
	newCells := stats.NewlyOwned()
	if newCells > cfg.MaxNewCellsXPPerActivity {
		newCells = cfg.MaxNewCellsXPPerActivity
	}
	return newCells*cfg.XPPerNewCell +
		stats.DefendedCellsCount*cfg.XPPerDefendedCell +
		stats.RecapturedCellsCount*cfg.XPPerRecapturedCell
}

func computeStreakBonus(activity models.Activity, ctx models.UserContext, cfg models.XPConfig) int {
	if activity.DurationSeconds < cfg.MinDurationSeconds {
		return 0
	}
	return cfg.BaseStreakXPPerWeek * ctx.CurrentStreakWeeks
}

func computeWeeklyRecordBonus(activity models.Activity, ctx models.UserContext, cfg models.XPConfig) int {
	best := ctx.BestWeeklyDistanceKm
	if best <= 0 || best < cfg.MinWeeklyRecordKm {
		return 0
	}
	newWeekDistance := ctx.CurrentWeekDistanceKm + activity.DistanceKm()
	if newWeekDistance <= best {
		return 0
	}
	diff := newWeekDistance - best
	return int(math.Floor(float64(cfg.WeeklyRecordBaseXP) + diff*cfg.WeeklyRecordPerKmDiffXP))
}
