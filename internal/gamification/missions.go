package gamification

import (
	"fmt"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// High-intensity pace thresholds in seconds per kilometer
const (
	runPaceThreshold  = 360.0
	bikePaceThreshold = 180.0
	walkPaceThreshold = 720.0
)

// ClassifyMissions produces the achievement entries earned by one activity.
// Pure and stateless; entries are not mutually exclusive and are never
// deduplicated against history.
func ClassifyMissions(activity models.Activity, stats models.TerritoryStats, ctx models.UserContext, cfg models.XPConfig) []models.Mission {
	var missions []models.Mission

	if stats.NewlyOwned() > 0 {
		missions = append(missions, territorialMission(ctx.UserID, stats.NewlyOwned(), cfg))
	}

	if stats.RecapturedCellsCount > 0 {
		missions = append(missions, models.Mission{
			UserID:      ctx.UserID,
			Category:    models.CategoryTerritorial,
			Name:        "Reconquista",
			Description: fmt.Sprintf("Has recuperado %d territorios perdidos", stats.RecapturedCellsCount),
			Rarity:      models.RarityEpic,
		})
	}

	if ctx.CurrentStreakWeeks > 0 {
		missions = append(missions, streakMission(ctx.UserID, ctx.CurrentStreakWeeks))
	}

	newWeekDistance := ctx.CurrentWeekDistanceKm + activity.DistanceKm()
	if ctx.BestWeeklyDistanceKm > 0 && newWeekDistance > ctx.BestWeeklyDistanceKm {
		missions = append(missions, weeklyRecordMission(ctx.UserID, newWeekDistance, ctx.BestWeeklyDistanceKm))
	}

	if isHighIntensity(activity) {
		missions = append(missions, physicalEffortMission(ctx.UserID, activity))
	}

	return missions
}

func territorialMission(userID string, cellCount int, cfg models.XPConfig) models.Mission {
	m := models.Mission{UserID: userID, Category: models.CategoryTerritorial}

	switch {
	case cellCount < 5:
		m.Rarity = models.RarityCommon
		m.Name = "Exploración Inicial"
		m.Description = fmt.Sprintf("Has conquistado %d nuevos territorios", cellCount)
	case cellCount < 15:
		m.Rarity = models.RarityRare
		m.Name = "Expedición"
		m.Description = fmt.Sprintf("Has expandido tu dominio con %d territorios", cellCount)
	case cellCount < cfg.LegendaryThresholdCells:
		m.Rarity = models.RarityEpic
		m.Name = "Conquista Épica"
		m.Description = fmt.Sprintf("¡Impresionante! %d territorios conquistados", cellCount)
	default:
		m.Rarity = models.RarityLegendary
		m.Name = "Dominio Legendario"
		m.Description = fmt.Sprintf("¡Hazaña legendaria! %d territorios bajo tu control", cellCount)
	}
	return m
}

func streakMission(userID string, streakWeeks int) models.Mission {
	rarity := models.RarityRare
	if streakWeeks >= 4 {
		rarity = models.RarityEpic
	}
	return models.Mission{
		UserID:      userID,
		Category:    models.CategoryProgression,
		Name:        "Racha Activa",
		Description: fmt.Sprintf("Semana #%d de tu racha", streakWeeks),
		Rarity:      rarity,
	}
}

func weeklyRecordMission(userID string, newDistance, previousBest float64) models.Mission {
	rarity := models.RarityEpic
	if newDistance-previousBest > 10 {
		rarity = models.RarityLegendary
	}
	return models.Mission{
		UserID:      userID,
		Category:    models.CategoryProgression,
		Name:        "Nuevo Récord Semanal",
		Description: fmt.Sprintf("¡%.1f km esta semana! Superaste tu récord", newDistance),
		Rarity:      rarity,
	}
}

func physicalEffortMission(userID string, activity models.Activity) models.Mission {
	pace := activity.DurationSeconds / activity.DistanceKm()
	if activity.Type == models.ActivityRun && pace < runPaceThreshold {
		return models.Mission{
			UserID:      userID,
			Category:    models.CategoryPhysicalEffort,
			Name:        "Sprint Intenso",
			Description: "Entrenamiento de alta intensidad completado",
			Rarity:      models.RarityRare,
		}
	}
	return models.Mission{
		UserID:      userID,
		Category:    models.CategoryPhysicalEffort,
		Name:        "Esfuerzo Destacado",
		Description: "Entrenamiento de alta intensidad completado",
		Rarity:      models.RarityCommon,
	}
}

// isHighIntensity reports whether the activity's pace qualifies for its
// type. Zero-distance activities never qualify.
func isHighIntensity(activity models.Activity) bool {
	distanceKm := activity.DistanceKm()
	if distanceKm <= 0 {
		return false
	}
	pace := activity.DurationSeconds / distanceKm

	switch activity.Type {
	case models.ActivityRun:
		return pace < runPaceThreshold
	case models.ActivityBike:
		return pace < bikePaceThreshold
	case models.ActivityWalk, models.ActivityHike:
		return pace < walkPaceThreshold
	}
	return false
}
