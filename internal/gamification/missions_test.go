package gamification

import (
	"testing"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

func findMission(missions []models.Mission, name string) *models.Mission {
	for i := range missions {
		if missions[i].Name == name {
			return &missions[i]
		}
	}
	return nil
}

func TestTerritorialMissionRarity(t *testing.T) {
	cfg := models.DefaultXPConfig()

	tests := []struct {
		cells  int
		name   string
		rarity models.MissionRarity
	}{
		{1, "Exploración Inicial", models.RarityCommon},
		{4, "Exploración Inicial", models.RarityCommon},
		{5, "Expedición", models.RarityRare},
		{14, "Expedición", models.RarityRare},
		{15, "Conquista Épica", models.RarityEpic},
		{19, "Conquista Épica", models.RarityEpic},
		{20, "Dominio Legendario", models.RarityLegendary},
		{100, "Dominio Legendario", models.RarityLegendary},
	}

	for _, tt := range tests {
		stats := models.TerritoryStats{NewCellsCount: tt.cells}
		missions := ClassifyMissions(run(1, 600), stats, emptyContext(), cfg)
		m := findMission(missions, tt.name)
		if m == nil {
			t.Errorf("%d cells: mission %q not awarded, got %+v", tt.cells, tt.name, missions)
			continue
		}
		if m.Rarity != tt.rarity {
			t.Errorf("%d cells: rarity = %q, want %q", tt.cells, m.Rarity, tt.rarity)
		}
		if m.Category != models.CategoryTerritorial {
			t.Errorf("%d cells: category = %q", tt.cells, m.Category)
		}
	}
}

func TestTerritorialMissionCountsStolenCells(t *testing.T) {
	cfg := models.DefaultXPConfig()

	// 3 new + 3 stolen crosses the 5-cell rarity boundary together
	stats := models.TerritoryStats{NewCellsCount: 3, StolenCellsCount: 3}
	missions := ClassifyMissions(run(1, 600), stats, emptyContext(), cfg)
	m := findMission(missions, "Expedición")
	if m == nil {
		t.Fatalf("expected Expedición for 6 newly owned cells, got %+v", missions)
	}

	// Defended cells alone never trigger a territorial mission
	missions = ClassifyMissions(run(1, 600), models.TerritoryStats{DefendedCellsCount: 10}, emptyContext(), cfg)
	for _, m := range missions {
		if m.Category == models.CategoryTerritorial {
			t.Errorf("territorial mission awarded for defended cells only: %+v", m)
		}
	}
}

func TestRecaptureMission(t *testing.T) {
	cfg := models.DefaultXPConfig()
	missions := ClassifyMissions(run(1, 600), models.TerritoryStats{RecapturedCellsCount: 1}, emptyContext(), cfg)

	m := findMission(missions, "Reconquista")
	if m == nil {
		t.Fatalf("Reconquista not awarded: %+v", missions)
	}
	if m.Rarity != models.RarityEpic {
		t.Errorf("Reconquista rarity = %q, want epic", m.Rarity)
	}
}

func TestStreakMission(t *testing.T) {
	cfg := models.DefaultXPConfig()

	tests := []struct {
		weeks  int
		rarity models.MissionRarity
	}{
		{1, models.RarityRare},
		{3, models.RarityRare},
		{4, models.RarityEpic},
		{12, models.RarityEpic},
	}
	for _, tt := range tests {
		ctx := emptyContext()
		ctx.CurrentStreakWeeks = tt.weeks
		missions := ClassifyMissions(run(1, 600), models.TerritoryStats{}, ctx, models.DefaultXPConfig())
		m := findMission(missions, "Racha Activa")
		if m == nil {
			t.Errorf("week %d: Racha Activa not awarded", tt.weeks)
			continue
		}
		if m.Rarity != tt.rarity {
			t.Errorf("week %d: rarity = %q, want %q", tt.weeks, m.Rarity, tt.rarity)
		}
	}

	missions := ClassifyMissions(run(1, 600), models.TerritoryStats{}, emptyContext(), cfg)
	if findMission(missions, "Racha Activa") != nil {
		t.Errorf("Racha Activa awarded with no streak")
	}
}

func TestWeeklyRecordMission(t *testing.T) {
	cfg := models.DefaultXPConfig()

	ctx := emptyContext()
	ctx.BestWeeklyDistanceKm = 20
	ctx.CurrentWeekDistanceKm = 18

	// 18 + 5 = 23, improvement of 3: epic
	missions := ClassifyMissions(run(5, 1800), models.TerritoryStats{}, ctx, cfg)
	m := findMission(missions, "Nuevo Récord Semanal")
	if m == nil {
		t.Fatalf("record mission not awarded")
	}
	if m.Rarity != models.RarityEpic {
		t.Errorf("rarity = %q, want epic", m.Rarity)
	}

	// 18 + 15 = 33, improvement over 10km: legendary
	missions = ClassifyMissions(run(15, 5400), models.TerritoryStats{}, ctx, cfg)
	if m := findMission(missions, "Nuevo Récord Semanal"); m == nil || m.Rarity != models.RarityLegendary {
		t.Errorf("big improvement: got %+v, want legendary", m)
	}

	// No prior record means no record mission
	missions = ClassifyMissions(run(15, 5400), models.TerritoryStats{}, emptyContext(), cfg)
	if findMission(missions, "Nuevo Récord Semanal") != nil {
		t.Errorf("record mission awarded with no prior record")
	}
}

func TestPhysicalEffortMission(t *testing.T) {
	cfg := models.DefaultXPConfig()

	tests := []struct {
		name     string
		activity models.Activity
		mission  string
	}{
		// 5km in 25min: 300 s/km, under the 360 run threshold
		{"fast run", run(5, 1500), "Sprint Intenso"},
		// 5km in 35min: 420 s/km, too slow
		{"slow run", run(5, 2100), ""},
		// 20km in 55min: 165 s/km, under the 180 bike threshold
		{"fast bike", models.Activity{Type: models.ActivityBike, DistanceMeters: 20000, DurationSeconds: 3300}, "Esfuerzo Destacado"},
		{"slow bike", models.Activity{Type: models.ActivityBike, DistanceMeters: 20000, DurationSeconds: 4000}, ""},
		// 5km in 55min: 660 s/km, under the 720 walk threshold
		{"brisk walk", models.Activity{Type: models.ActivityWalk, DistanceMeters: 5000, DurationSeconds: 3300}, "Esfuerzo Destacado"},
		{"brisk hike", models.Activity{Type: models.ActivityHike, DistanceMeters: 5000, DurationSeconds: 3300}, "Esfuerzo Destacado"},
		{"zero distance never qualifies", models.Activity{Type: models.ActivityRun, DistanceMeters: 0, DurationSeconds: 600}, ""},
		{"indoor never qualifies", models.Activity{Type: models.ActivityIndoor, DistanceMeters: 5000, DurationSeconds: 60}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missions := ClassifyMissions(tt.activity, models.TerritoryStats{}, emptyContext(), cfg)

			var effort *models.Mission
			for i := range missions {
				if missions[i].Category == models.CategoryPhysicalEffort {
					effort = &missions[i]
				}
			}
			if tt.mission == "" {
				if effort != nil {
					t.Errorf("effort mission awarded: %+v", effort)
				}
				return
			}
			if effort == nil {
				t.Fatalf("no effort mission awarded")
			}
			if effort.Name != tt.mission {
				t.Errorf("mission = %q, want %q", effort.Name, tt.mission)
			}
		})
	}
}
