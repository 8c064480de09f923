package dto

import (
	"time"

	"github.com/melhem/content-hub/internal/domain"
)

// NotificationResponse is the wire shape of a notification.
type NotificationResponse struct {
	ID          string                  `json:"id"`
	RecipientID string                  `json:"recipient_id"`
	Title       string                  `json:"title"`
	Message     string                  `json:"message"`
	CreatedAt   time.Time               `json:"created_at"`
	IsRead      bool                    `json:"is_read"`
	CaseID      string                  `json:"case_id,omitempty"`
	Type        domain.NotificationType `json:"type"`
}

// UnreadCountResponse wraps the unread counter.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// FromNotification maps a notification onto its wire shape.
func FromNotification(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Title:       n.Title,
		Message:     n.Message,
		CreatedAt:   n.CreatedAt,
		IsRead:      n.IsRead,
		CaseID:      n.CaseID,
		Type:        n.Type,
	}
}

// FromNotifications maps a slice of notifications.
func FromNotifications(notifications []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, FromNotification(n))
	}
	return out
}
