package events

import (
	"time"

	"github.com/melhem/content-hub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseSubmitted     EventType = "case_submitted"
	EventCaseStatusChanged EventType = "case_status_changed"
	EventCasePublished     EventType = "case_published"
	EventNotificationsRead EventType = "notifications_read"
)

// Actor encapsulates who caused an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CaseID    string      `json:"case_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CaseSubmittedPayload payload.
type CaseSubmittedPayload struct {
	DoctorID   string             `json:"doctor_id"`
	DoctorName string             `json:"doctor_name"`
	Title      string             `json:"title"`
	Category   string             `json:"category"`
	Tone       domain.ContentTone `json:"tone"`
}

// CaseStatusChangedPayload payload.
type CaseStatusChangedPayload struct {
	OldStatus domain.CaseStatus `json:"old_status"`
	NewStatus domain.CaseStatus `json:"new_status"`
}

// CasePublishedPayload payload.
type CasePublishedPayload struct {
	ResultType domain.PublishedResultType `json:"result_type"`
	Content    string                     `json:"content"`
}

// NotificationsReadPayload payload.
type NotificationsReadPayload struct {
	NotificationID string `json:"notification_id,omitempty"`
	All            bool   `json:"all"`
}
