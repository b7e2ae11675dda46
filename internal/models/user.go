package models

import "time"

// User is a stored user profile with its gamification progress
type User struct {
	ID                    string    `json:"id" db:"user_id"`
	DisplayName           string    `json:"display_name" db:"display_name"`
	PhotoURL              string    `json:"photo_url,omitempty" db:"photo_url"`
	XP                    int       `json:"xp" db:"xp"`
	Level                 int       `json:"level" db:"level"`
	CurrentWeekDistanceKm float64   `json:"current_week_distance_km" db:"current_week_distance_km"`
	BestWeeklyDistanceKm  float64   `json:"best_weekly_distance_km" db:"best_weekly_distance_km"`
	CurrentStreakWeeks    int       `json:"current_streak_weeks" db:"current_streak_weeks"`
	TodayBaseXPEarned     int       `json:"today_base_xp_earned" db:"today_base_xp_earned"`
	LastActivityDate      time.Time `json:"last_activity_date,omitempty" db:"last_activity_date"`
}
