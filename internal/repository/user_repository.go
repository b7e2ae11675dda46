package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// UserRepository handles database operations for user profiles
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Get retrieves a user profile, nil when absent
func (r *UserRepository) Get(userID string) (*models.User, error) {
	var u models.User
	var lastActivity int64
	err := r.db.QueryRow(`
		SELECT user_id, display_name, photo_url, xp, level,
			current_week_distance_km, best_weekly_distance_km, current_streak_weeks,
			today_base_xp_earned, last_activity_date
		FROM users WHERE user_id = ?`, userID).Scan(
		&u.ID, &u.DisplayName, &u.PhotoURL, &u.XP, &u.Level,
		&u.CurrentWeekDistanceKm, &u.BestWeeklyDistanceKm, &u.CurrentStreakWeeks,
		&u.TodayBaseXPEarned, &lastActivity,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if lastActivity > 0 {
		u.LastActivityDate = time.Unix(lastActivity, 0).UTC()
	}
	return &u, nil
}

// Upsert creates or updates a user profile
func (r *UserRepository) Upsert(u *models.User) error {
	_, err := r.db.Exec(`
		INSERT INTO users (user_id, display_name, photo_url, xp, level,
			current_week_distance_km, best_weekly_distance_km, current_streak_weeks,
			today_base_xp_earned, last_activity_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, strftime('%s','now'))
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			photo_url = excluded.photo_url,
			xp = excluded.xp,
			level = excluded.level,
			current_week_distance_km = excluded.current_week_distance_km,
			best_weekly_distance_km = excluded.best_weekly_distance_km,
			current_streak_weeks = excluded.current_streak_weeks,
			today_base_xp_earned = excluded.today_base_xp_earned,
			last_activity_date = excluded.last_activity_date,
			updated_at = excluded.updated_at`,
		u.ID, u.DisplayName, u.PhotoURL, u.XP, u.Level,
		u.CurrentWeekDistanceKm, u.BestWeeklyDistanceKm, u.CurrentStreakWeeks,
		u.TodayBaseXPEarned, u.LastActivityDate.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetContext builds the scoring snapshot for a user, nil when the user is
// unknown. Scoring cannot proceed without it; the caller aborts.
func (r *UserRepository) GetContext(userID string) (*models.UserContext, error) {
	u, err := r.Get(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &models.UserContext{
		UserID:                u.ID,
		CurrentWeekDistanceKm: u.CurrentWeekDistanceKm,
		BestWeeklyDistanceKm:  u.BestWeeklyDistanceKm,
		CurrentStreakWeeks:    u.CurrentStreakWeeks,
		TodayBaseXPEarned:     u.TodayBaseXPEarned,
		TotalXP:               u.XP,
		Level:                 u.Level,
	}, nil
}

// SaveProgress writes back the post-activity gamification state
func (r *UserRepository) SaveProgress(userID string, totalXP, level int, weekDistanceKm, bestWeeklyKm float64, todayBaseXP int, lastActivity time.Time) error {
	_, err := r.db.Exec(`
		UPDATE users SET xp = ?, level = ?, current_week_distance_km = ?,
			best_weekly_distance_km = ?, today_base_xp_earned = ?,
			last_activity_date = ?, updated_at = strftime('%s','now')
		WHERE user_id = ?`,
		totalXP, level, weekDistanceKm, bestWeeklyKm, todayBaseXP, lastActivity.Unix(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save user progress: %w", err)
	}
	return nil
}
