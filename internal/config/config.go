package config

import (
	"os"
)

// Config holds service configuration, loaded from the environment
type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	GameplayPath string // optional YAML overrides for gameplay tunables
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/territory/territory.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:         port,
		DBPath:       dbPath,
		JWTSecret:    jwtSecret,
		GameplayPath: os.Getenv("GAMEPLAY_CONFIG"),
	}
}
