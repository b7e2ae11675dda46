package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// FeedRepository handles database operations for feed events
type FeedRepository struct {
	db *sql.DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *sql.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// Insert stores one feed event, replacing any previous event with the same
// id (reprocessing an activity overwrites its summary rather than
// duplicating it)
func (r *FeedRepository) Insert(ev *models.FeedEvent) error {
	dataJSON, err := json.Marshal(ev.ActivityData)
	if err != nil {
		return fmt.Errorf("failed to marshal feed activity data: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO feed_events (id, type, date, activity_id, title, subtitle, xp_earned,
			user_id, related_user_name, user_level, user_avatar_url, rarity, activity_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, strftime('%s','now'))
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type, date = excluded.date, title = excluded.title,
			subtitle = excluded.subtitle, xp_earned = excluded.xp_earned,
			user_level = excluded.user_level, rarity = excluded.rarity,
			activity_data = excluded.activity_data`,
		ev.ID, ev.Type, ev.Date.Unix(), ev.ActivityID, ev.Title, ev.Subtitle, ev.XPEarned,
		ev.UserID, ev.RelatedUserName, ev.UserLevel, ev.UserAvatarURL, string(ev.Rarity), string(dataJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert feed event: %w", err)
	}
	return nil
}

// List retrieves feed events newest first, optionally before a given time
func (r *FeedRepository) List(limit int, before time.Time) ([]models.FeedEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	cutoff := before.Unix()
	if before.IsZero() {
		cutoff = time.Now().UTC().Add(24 * time.Hour).Unix()
	}

	rows, err := r.db.Query(`
		SELECT id, type, date, activity_id, title, subtitle, xp_earned,
			user_id, related_user_name, user_level, user_avatar_url, rarity, activity_data
		FROM feed_events WHERE date < ?
		ORDER BY date DESC LIMIT ?`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer rows.Close()

	var events []models.FeedEvent
	for rows.Next() {
		var ev models.FeedEvent
		var date int64
		var rarity, dataJSON string
		if err := rows.Scan(&ev.ID, &ev.Type, &date, &ev.ActivityID, &ev.Title, &ev.Subtitle,
			&ev.XPEarned, &ev.UserID, &ev.RelatedUserName, &ev.UserLevel, &ev.UserAvatarURL,
			&rarity, &dataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan feed event: %w", err)
		}
		ev.Date = time.Unix(date, 0).UTC()
		ev.Rarity = models.MissionRarity(rarity)
		ev.IsPersonal = true
		_ = json.Unmarshal([]byte(dataJSON), &ev.ActivityData)
		events = append(events, ev)
	}
	return events, rows.Err()
}
