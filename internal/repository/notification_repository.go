package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert stores one notification row
func (r *NotificationRepository) Insert(n *models.Notification) error {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	res, err := r.db.Exec(`
		INSERT INTO notifications (recipient_id, type, sender_id, sender_name, sender_avatar_url,
			activity_id, badge_id, reaction_type, location_label, message, is_read, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.RecipientID, n.Type, n.SenderID, n.SenderName, n.SenderAvatarURL,
		n.ActivityID, n.BadgeID, n.ReactionType, n.LocationLabel, n.Message, n.IsRead, n.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	n.ID, _ = res.LastInsertId()
	return nil
}

// ListForUser retrieves the newest notifications for a recipient
func (r *NotificationRepository) ListForUser(userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, recipient_id, type, sender_id, sender_name, sender_avatar_url,
			activity_id, badge_id, reaction_type, location_label, message, is_read, timestamp
		FROM notifications WHERE recipient_id = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var ts int64
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.SenderID, &n.SenderName,
			&n.SenderAvatarURL, &n.ActivityID, &n.BadgeID, &n.ReactionType, &n.LocationLabel,
			&n.Message, &n.IsRead, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Timestamp = time.Unix(ts, 0).UTC()
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
