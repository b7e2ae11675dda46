package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration is one versioned schema change
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are embedded so the binary is self-contained. Times that feed
// the arbitration logic are stored as unix seconds, never as text, to keep
// comparisons exact across drivers.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "init",
		SQL: `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT 'Adventurer',
	photo_url TEXT NOT NULL DEFAULT '',
	xp INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL DEFAULT 1,
	current_week_distance_km REAL NOT NULL DEFAULT 0,
	best_weekly_distance_km REAL NOT NULL DEFAULT 0,
	current_streak_weeks INTEGER NOT NULL DEFAULT 0,
	today_base_xp_earned INTEGER NOT NULL DEFAULT 0,
	last_activity_date INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS activities (
	activity_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	activity_type TEXT NOT NULL,
	distance_meters REAL NOT NULL DEFAULT 0,
	duration_seconds REAL NOT NULL DEFAULT 0,
	calories REAL NOT NULL DEFAULT 0,
	average_heart_rate REAL NOT NULL DEFAULT 0,
	location_label TEXT NOT NULL DEFAULT '',
	end_date INTEGER NOT NULL,
	processing_status TEXT NOT NULL DEFAULT 'pending',
	xp_breakdown TEXT,
	missions TEXT,
	territory_stats TEXT,
	territory_cell_count INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_activities_user ON activities(user_id, end_date);

CREATE TABLE IF NOT EXISTS activity_routes (
	activity_id TEXT NOT NULL,
	chunk_order INTEGER NOT NULL,
	point_count INTEGER NOT NULL,
	points BLOB NOT NULL,
	PRIMARY KEY (activity_id, chunk_order)
);

CREATE TABLE IF NOT EXISTS activity_territories (
	activity_id TEXT NOT NULL,
	chunk_order INTEGER NOT NULL,
	cell_count INTEGER NOT NULL,
	cells TEXT NOT NULL,
	PRIMARY KEY (activity_id, chunk_order)
);

CREATE TABLE IF NOT EXISTS territories (
	cell_id TEXT PRIMARY KEY,
	center_lat REAL NOT NULL,
	center_lon REAL NOT NULL,
	expires_at INTEGER NOT NULL,
	last_conquered_at INTEGER NOT NULL,
	user_id TEXT NOT NULL,
	activity_id TEXT NOT NULL DEFAULT '',
	last_interaction TEXT NOT NULL DEFAULT 'conquest',
	updated_at INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_territories_owner ON territories(user_id);
CREATE INDEX IF NOT EXISTS idx_territories_center ON territories(center_lat, center_lon);

CREATE TABLE IF NOT EXISTS territory_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cell_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	activity_id TEXT NOT NULL DEFAULT '',
	interaction TEXT NOT NULL,
	previous_owner_id TEXT NOT NULL DEFAULT '',
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_cell ON territory_history(cell_id, timestamp);

CREATE TABLE IF NOT EXISTS xp_config (
	key TEXT PRIMARY KEY,
	value REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recipient_id TEXT NOT NULL,
	type TEXT NOT NULL,
	sender_id TEXT NOT NULL DEFAULT '',
	sender_name TEXT NOT NULL DEFAULT '',
	sender_avatar_url TEXT NOT NULL DEFAULT '',
	activity_id TEXT NOT NULL DEFAULT '',
	badge_id TEXT NOT NULL DEFAULT '',
	location_label TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL DEFAULT '',
	is_read INTEGER NOT NULL DEFAULT 0,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, timestamp);

CREATE TABLE IF NOT EXISTS feed_events (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	date INTEGER NOT NULL,
	activity_id TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	subtitle TEXT NOT NULL DEFAULT '',
	xp_earned INTEGER NOT NULL DEFAULT 0,
	user_id TEXT NOT NULL,
	related_user_name TEXT NOT NULL DEFAULT '',
	user_level INTEGER NOT NULL DEFAULT 1,
	user_avatar_url TEXT NOT NULL DEFAULT '',
	rarity TEXT NOT NULL DEFAULT '',
	activity_data TEXT NOT NULL DEFAULT '{}',
	created_at INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_feed_date ON feed_events(date);
`,
	},
	{
		Version: 2,
		Name:    "reactions",
		SQL: `
CREATE TABLE IF NOT EXISTS activity_reactions (
	activity_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	reaction_type TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (activity_id, user_id)
);

ALTER TABLE notifications ADD COLUMN reaction_type TEXT NOT NULL DEFAULT '';
`,
	},
}

// Migrate applies all pending migrations in version order
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
			}
			_, err := tx.Exec(
				"INSERT INTO migrations (version, name, applied_at) VALUES (?, ?, strftime('%s','now'))",
				m.Version, m.Name,
			)
			return err
		})
		if err != nil {
			return err
		}
		log.Printf("[Database] Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}
