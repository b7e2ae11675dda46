package gamification

import (
	"testing"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

func run(distanceKm, durationSec float64) models.Activity {
	return models.Activity{
		ID:              "act-1",
		UserID:          "user-1",
		Type:            models.ActivityRun,
		DistanceMeters:  distanceKm * 1000,
		DurationSeconds: durationSec,
	}
}

func emptyContext() models.UserContext {
	return models.UserContext{UserID: "user-1", Level: 1}
}

func TestComputeXPDeterministic(t *testing.T) {
	activity := run(5, 1800)
	stats := models.TerritoryStats{NewCellsCount: 10, DefendedCellsCount: 3}
	ctx := models.UserContext{UserID: "user-1", CurrentStreakWeeks: 2}
	cfg := models.DefaultXPConfig()

	first := ComputeXP(activity, stats, ctx, cfg)
	second := ComputeXP(activity, stats, ctx, cfg)
	if first != second {
		t.Errorf("ComputeXP is not deterministic: %+v vs %+v", first, second)
	}
	if sum := first.XPBase + first.XPTerritory + first.XPStreak + first.XPWeeklyRecord + first.XPBadges; first.Total != sum {
		t.Errorf("Total = %d, want sum of components %d", first.Total, sum)
	}
	if first.XPBadges != 0 {
		t.Errorf("XPBadges = %d, want 0", first.XPBadges)
	}
}

func TestBaseXP(t *testing.T) {
	cfg := models.DefaultXPConfig()

	tests := []struct {
		name     string
		activity models.Activity
		ctx      models.UserContext
		want     int
	}{
		// 5km run at factor 1.2: floor(5 * 10 * 1.2)
		{"qualifying run", run(5, 1800), emptyContext(), 60},
		{"below distance threshold", run(0.4, 1800), emptyContext(), 0},
		{"below duration threshold", run(5, 299), emptyContext(), 0},
		{"bike factor", models.Activity{Type: models.ActivityBike, DistanceMeters: 10000, DurationSeconds: 1800}, emptyContext(), 70},
		{"hike shares walk factor", models.Activity{Type: models.ActivityHike, DistanceMeters: 10000, DurationSeconds: 7200}, emptyContext(), 90},
		{"unknown type scores at 1.0", models.Activity{Type: "swim", DistanceMeters: 10000, DurationSeconds: 3600}, emptyContext(), 100},
		// indoor: floor(20 minutes * 3.0), distance ignored
		{"indoor by minutes", models.Activity{Type: models.ActivityIndoor, DistanceMeters: 0, DurationSeconds: 1200}, emptyContext(), 60},
		{"indoor below duration threshold", models.Activity{Type: models.ActivityIndoor, DurationSeconds: 299}, emptyContext(), 0},
		// cap: 60 raw, 10 remaining today
		{"daily cap clamps", run(5, 1800), models.UserContext{TodayBaseXPEarned: 290}, 10},
		{"daily cap exhausted", run(5, 1800), models.UserContext{TodayBaseXPEarned: 300}, 0},
		{"daily cap overshot stays zero", run(5, 1800), models.UserContext{TodayBaseXPEarned: 350}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeXP(tt.activity, models.TerritoryStats{}, tt.ctx, cfg)
			if got.XPBase != tt.want {
				t.Errorf("XPBase = %d, want %d", got.XPBase, tt.want)
			}
		})
	}
}

func TestTerritoryXP(t *testing.T) {
	cfg := models.DefaultXPConfig()

	tests := []struct {
		name  string
		stats models.TerritoryStats
		want  int
	}{
		{"no cells", models.TerritoryStats{}, 0},
		// 10*8 + 3*3 + 2*12
		{"mixed outcomes", models.TerritoryStats{NewCellsCount: 10, DefendedCellsCount: 3, RecapturedCellsCount: 2}, 113},
		// stolen cells score as newly owned: (4+6)*8
		{"stolen counts as newly owned", models.TerritoryStats{NewCellsCount: 4, StolenCellsCount: 6}, 80},
		// 80 newly owned clamps to 50: 50*8
		{"new-cell clamp", models.TerritoryStats{NewCellsCount: 80}, 400},
		// clamp applies to the sum of new and stolen
		{"clamp spans both buckets", models.TerritoryStats{NewCellsCount: 30, StolenCellsCount: 30}, 400},
		// defended and recaptured are never clamped: 60*3 + 60*12
		{"clamp leaves other buckets alone", models.TerritoryStats{DefendedCellsCount: 60, RecapturedCellsCount: 60}, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeXP(run(0, 0), tt.stats, emptyContext(), cfg)
			if got.XPTerritory != tt.want {
				t.Errorf("XPTerritory = %d, want %d", got.XPTerritory, tt.want)
			}
		})
	}
}

func TestStreakBonus(t *testing.T) {
	cfg := models.DefaultXPConfig()

	got := ComputeXP(run(5, 1800), models.TerritoryStats{}, models.UserContext{CurrentStreakWeeks: 3}, cfg)
	if got.XPStreak != 30 {
		t.Errorf("XPStreak = %d, want 30", got.XPStreak)
	}

	// Too short to qualify, streak pays nothing
	got = ComputeXP(run(5, 120), models.TerritoryStats{}, models.UserContext{CurrentStreakWeeks: 3}, cfg)
	if got.XPStreak != 0 {
		t.Errorf("XPStreak = %d for short activity, want 0", got.XPStreak)
	}
}

func TestWeeklyRecordBonus(t *testing.T) {
	cfg := models.DefaultXPConfig()

	tests := []struct {
		name string
		ctx  models.UserContext
		want int
	}{
		{"no record yet", models.UserContext{CurrentWeekDistanceKm: 20}, 0},
		{"record below minimum", models.UserContext{BestWeeklyDistanceKm: 3, CurrentWeekDistanceKm: 20}, 0},
		{"record not beaten", models.UserContext{BestWeeklyDistanceKm: 30, CurrentWeekDistanceKm: 20}, 0},
		{"record equalled exactly", models.UserContext{BestWeeklyDistanceKm: 25, CurrentWeekDistanceKm: 20}, 0},
		// new week 25, best 20: floor(30 + 5*5)
		{"record beaten", models.UserContext{BestWeeklyDistanceKm: 20, CurrentWeekDistanceKm: 20}, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeXP(run(5, 1800), models.TerritoryStats{}, tt.ctx, cfg)
			if got.XPWeeklyRecord != tt.want {
				t.Errorf("XPWeeklyRecord = %d, want %d", got.XPWeeklyRecord, tt.want)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{2500, 3},
		{10000, 11},
	}
	for _, tt := range tests {
		if got := Level(tt.totalXP); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.totalXP, got, tt.want)
		}
	}
}
