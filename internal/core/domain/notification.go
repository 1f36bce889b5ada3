package domain

import "time"

// NotificationKind tags what ledger event produced a notification.
type NotificationKind string

const (
	KindNewApplication    NotificationKind = "new_application"
	KindApplicationUpdate NotificationKind = "application_update"
)

// Notification is a per-user, read/unread event record produced as a
// side effect of ledger events. Clients never create one directly; the
// only mutation ever applied is flipping Read to true.
type Notification struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	CampaignID string           `json:"campaign_id"`
	Kind       NotificationKind `json:"kind"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Read       bool             `json:"read"`
	CreatedAt  time.Time        `json:"created_at"`
}
