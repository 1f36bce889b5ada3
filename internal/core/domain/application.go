package domain

import "time"

// ApplicationStatus is the lifecycle state of an application. The only
// legal transitions are pending -> accepted and pending -> rejected;
// both targets are terminal.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Decision reports whether the status is a valid target for a decide
// call. Pending is not: there is no path back to pending.
func (s ApplicationStatus) Decision() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// Terminal reports whether no further transition may leave this status.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// Application is a creator's request to participate in a campaign. At
// most one application exists per (campaign, creator) pair. CreatorName
// is denormalised at creation time so applicant lists render without a
// user lookup. BidAmount is informational only.
type Application struct {
	ID          string            `json:"id"`
	CampaignID  string            `json:"campaign_id"`
	CreatorID   string            `json:"creator_id"`
	CreatorName string            `json:"creator_name"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	BidAmount   int64             `json:"bid_amount,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
