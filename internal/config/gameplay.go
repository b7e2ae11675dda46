package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Gameplay holds tunables that change how territory processing behaves
type Gameplay struct {
	TerritoryExpirationDays int `yaml:"territory_expiration_days"`

	IngestRateLimit         int `yaml:"ingest_rate_limit"`
	IngestRateWindowSeconds int `yaml:"ingest_rate_window_seconds"`
}

// DefaultGameplay returns the documented gameplay defaults
func DefaultGameplay() Gameplay {
	return Gameplay{
		TerritoryExpirationDays: 7,
		IngestRateLimit:         60,
		IngestRateWindowSeconds: 60,
	}
}

// LoadGameplay reads YAML overrides from path on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadGameplay(path string) (Gameplay, error) {
	g := DefaultGameplay()
	if path == "" {
		return g, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return g, err
	}
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return g, fmt.Errorf("gameplay config: %w", err)
	}
	if g.TerritoryExpirationDays <= 0 {
		g.TerritoryExpirationDays = DefaultGameplay().TerritoryExpirationDays
	}
	return g, nil
}
