package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// ReactionRepository handles database operations for activity reactions
type ReactionRepository struct {
	db *sql.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *sql.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Upsert stores a user's reaction to an activity, replacing any previous one
func (r *ReactionRepository) Upsert(reaction *models.Reaction) error {
	if reaction.CreatedAt.IsZero() {
		reaction.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(`
		INSERT INTO activity_reactions (activity_id, user_id, reaction_type, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(activity_id, user_id) DO UPDATE SET
			reaction_type = excluded.reaction_type,
			created_at = excluded.created_at`,
		reaction.ActivityID, reaction.UserID, reaction.ReactionType, reaction.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert reaction: %w", err)
	}
	return nil
}

// ListForActivity retrieves all reactions to an activity, newest first
func (r *ReactionRepository) ListForActivity(activityID string) ([]models.Reaction, error) {
	rows, err := r.db.Query(`
		SELECT activity_id, user_id, reaction_type, created_at
		FROM activity_reactions WHERE activity_id = ?
		ORDER BY created_at DESC`, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	var reactions []models.Reaction
	for rows.Next() {
		var reaction models.Reaction
		var createdAt int64
		if err := rows.Scan(&reaction.ActivityID, &reaction.UserID, &reaction.ReactionType, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		reaction.CreatedAt = time.Unix(createdAt, 0).UTC()
		reactions = append(reactions, reaction)
	}
	return reactions, rows.Err()
}
