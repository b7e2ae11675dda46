package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGameplayDefaults(t *testing.T) {
	g, err := LoadGameplay("")
	if err != nil {
		t.Fatalf("LoadGameplay failed: %v", err)
	}
	if g != DefaultGameplay() {
		t.Errorf("empty path returned %+v, want defaults", g)
	}
}

func TestLoadGameplayOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gameplay.yaml")
	raw := "territory_expiration_days: 14\ningest_rate_limit: 10\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGameplay(path)
	if err != nil {
		t.Fatalf("LoadGameplay failed: %v", err)
	}
	if g.TerritoryExpirationDays != 14 {
		t.Errorf("TerritoryExpirationDays = %d, want 14", g.TerritoryExpirationDays)
	}
	if g.IngestRateLimit != 10 {
		t.Errorf("IngestRateLimit = %d, want 10", g.IngestRateLimit)
	}
	// Keys absent from the file keep their defaults
	if g.IngestRateWindowSeconds != DefaultGameplay().IngestRateWindowSeconds {
		t.Errorf("IngestRateWindowSeconds = %d, want default", g.IngestRateWindowSeconds)
	}
}

func TestLoadGameplayMissingFile(t *testing.T) {
	g, err := LoadGameplay(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Errorf("expected an error for a missing file")
	}
	// Still usable
	if g != DefaultGameplay() {
		t.Errorf("missing file returned %+v, want defaults", g)
	}
}

func TestLoadGameplayRejectsNonPositiveExpiration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gameplay.yaml")
	if err := os.WriteFile(path, []byte("territory_expiration_days: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGameplay(path)
	if err != nil {
		t.Fatalf("LoadGameplay failed: %v", err)
	}
	if g.TerritoryExpirationDays != DefaultGameplay().TerritoryExpirationDays {
		t.Errorf("TerritoryExpirationDays = %d, want default", g.TerritoryExpirationDays)
	}
}
