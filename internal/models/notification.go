package models

import "time"

// Notification types
const (
	NotificationAchievement      = "achievement"
	NotificationTerritoryStolen  = "territory_stolen"
	NotificationStealSuccess     = "territory_stolen_success"
	NotificationTerritoryWon     = "territory_conquered"
	NotificationWorkoutProcessed = "workout_import"
	NotificationReaction         = "reaction"
)

// Notification is one stored in-app notification row. Delivery to devices
// is out of scope; rows are consumed by the client over the API.
type Notification struct {
	ID              int64     `json:"id" db:"id"`
	RecipientID     string    `json:"recipient_id" db:"recipient_id"`
	Type            string    `json:"type" db:"type"`
	SenderID        string    `json:"sender_id,omitempty" db:"sender_id"`
	SenderName      string    `json:"sender_name,omitempty" db:"sender_name"`
	SenderAvatarURL string    `json:"sender_avatar_url,omitempty" db:"sender_avatar_url"`
	ActivityID      string    `json:"activity_id,omitempty" db:"activity_id"`
	BadgeID         string    `json:"badge_id,omitempty" db:"badge_id"`
	ReactionType    string    `json:"reaction_type,omitempty" db:"reaction_type"`
	LocationLabel   string    `json:"location_label,omitempty" db:"location_label"`
	Message         string    `json:"message,omitempty" db:"message"`
	IsRead          bool      `json:"is_read" db:"is_read"`
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
}
