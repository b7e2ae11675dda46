package repository

import (
	"testing"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

func TestGetXPConfigDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewConfigRepository(db)

	cfg, err := repo.GetXPConfig()
	if err != nil {
		t.Fatalf("GetXPConfig failed: %v", err)
	}
	if cfg != models.DefaultXPConfig() {
		t.Errorf("empty table returned %+v, want defaults", cfg)
	}
}

func TestGetXPConfigLayersStoredKeys(t *testing.T) {
	db := newTestDB(t)
	repo := NewConfigRepository(db)

	for key, value := range map[string]float64{
		"baseFactorPerKm": 12,
		"factorRun":       1.5,
		"dailyBaseXPCap":  500,
		"someFutureKey":   99, // unknown keys are ignored, not fatal
	} {
		if _, err := db.Exec("INSERT INTO xp_config (key, value) VALUES (?, ?)", key, value); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := repo.GetXPConfig()
	if err != nil {
		t.Fatalf("GetXPConfig failed: %v", err)
	}
	if cfg.BaseFactorPerKm != 12 || cfg.FactorRun != 1.5 || cfg.DailyBaseXPCap != 500 {
		t.Errorf("stored keys not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults
	if cfg.XPPerNewCell != models.DefaultXPConfig().XPPerNewCell {
		t.Errorf("XPPerNewCell = %d, want default", cfg.XPPerNewCell)
	}
}
