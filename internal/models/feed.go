package models

import "time"

// Feed event types
const (
	FeedTerritoryConquered  = "territory_conquered"
	FeedTerritoryRecaptured = "territory_recaptured"
	FeedDistanceRecord      = "distance_record"
)

// FeedActivityData is the activity summary embedded in a feed event
type FeedActivityData struct {
	ActivityType         ActivityType `json:"activityType"`
	DistanceMeters       float64      `json:"distanceMeters"`
	DurationSeconds      float64      `json:"durationSeconds"`
	XPEarned             int          `json:"xpEarned"`
	NewZonesCount        int          `json:"newZonesCount"`
	DefendedZonesCount   int          `json:"defendedZonesCount"`
	RecapturedZonesCount int          `json:"recapturedZonesCount"`
	Calories             float64      `json:"calories"`
	AverageHeartRate     float64      `json:"averageHeartRate"`
	LocationLabel        string       `json:"locationLabel,omitempty"`
}

// FeedEvent is one social-feed entry summarizing a processed activity
type FeedEvent struct {
	ID              string           `json:"id" db:"id"`
	Type            string           `json:"type" db:"type"`
	Date            time.Time        `json:"date" db:"date"`
	ActivityID      string           `json:"activity_id" db:"activity_id"`
	Title           string           `json:"title" db:"title"`
	Subtitle        string           `json:"subtitle,omitempty" db:"subtitle"`
	XPEarned        int              `json:"xp_earned" db:"xp_earned"`
	UserID          string           `json:"user_id" db:"user_id"`
	RelatedUserName string           `json:"related_user_name,omitempty" db:"related_user_name"`
	UserLevel       int              `json:"user_level" db:"user_level"`
	UserAvatarURL   string           `json:"user_avatar_url,omitempty" db:"user_avatar_url"`
	Rarity          MissionRarity    `json:"rarity,omitempty" db:"rarity"`
	ActivityData    FeedActivityData `json:"activity_data" db:"-"`
	IsPersonal      bool             `json:"is_personal" db:"-"`
}
