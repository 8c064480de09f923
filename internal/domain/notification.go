package domain

import "time"

// NotificationType captures what triggered a notification.
type NotificationType string

const (
	NotificationNewSubmission NotificationType = "NEW_SUBMISSION"
	NotificationStatusChange  NotificationType = "STATUS_CHANGE"
)

// MarketingTeamRecipient is the sentinel recipient id addressing the whole
// marketing role instead of an individual user.
const MarketingTeamRecipient = "MARKETING_TEAM"

// Notification is a one-way, addressed event record informing a doctor or
// the marketing team of a case change.
type Notification struct {
	ID          string
	RecipientID string
	Title       string
	Message     string
	CreatedAt   time.Time
	IsRead      bool
	CaseID      string
	Type        NotificationType
}
