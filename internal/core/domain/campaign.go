package domain

import "time"

// CampaignStatus is the lifecycle state of a campaign. Closed campaigns
// no longer accept applications.
type CampaignStatus string

const (
	CampaignActive CampaignStatus = "active"
	CampaignClosed CampaignStatus = "closed"
)

// Campaign represents a sponsorship opportunity posted by a business.
// Budget is stored in integer units (e.g. cents). Applicants is the
// derived, append-ordered list of creator ids who applied; it is only
// mutated through the application ledger.
type Campaign struct {
	ID          string         `json:"id"`
	BusinessID  string         `json:"business_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Budget      int64          `json:"budget"`
	Status      CampaignStatus `json:"status"`
	Applicants  []string       `json:"applicants"`
	CreatedAt   time.Time      `json:"created_at"`
}
