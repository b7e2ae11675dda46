package models

import "time"

// Reaction is one user's reaction to an activity. A user holds at most one
// reaction per activity; reacting again replaces it.
type Reaction struct {
	ActivityID   string    `json:"activity_id" db:"activity_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	ReactionType string    `json:"reaction_type" db:"reaction_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
