package port

import (
	"context"

	"linkfluence/internal/core/domain"
)

// Inbound ports: the operations the HTTP layer calls. All validation
// and uniqueness enforcement happens behind these interfaces, never as
// caller-side check-then-act.

// SubmitApplicationReq carries a creator's apply request.
type SubmitApplicationReq struct {
	CampaignID  string
	CreatorID   string
	CreatorName string
	CoverLetter string
	BidAmount   int64
}

// PostMessageReq carries one message between the two parties of a
// campaign relationship.
type PostMessageReq struct {
	CampaignID string
	SenderID   string
	ReceiverID string
	Content    string
}

// UnreadSummary is the notification read model: the newest
// notifications plus the unread count across the whole stream.
type UnreadSummary struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// EngagementService orchestrates the application ledger, notification
// dispatch and conversation store, enforcing the cross-entity
// invariants atomically.
type EngagementService interface {
	// SubmitApplication records a pending application and fans out the
	// "new application" notification to the campaign owner in the same
	// atomic unit.
	SubmitApplication(ctx context.Context, req SubmitApplicationReq) (*domain.Application, error)

	// ResolveApplication applies a terminal decision on behalf of the
	// acting business, which must own the referenced campaign
	// (domain.ErrNotOwner otherwise).
	ResolveApplication(ctx context.Context, applicationID string, decision domain.ApplicationStatus, actingBusinessID string) (*domain.Application, error)

	CampaignApplications(ctx context.Context, campaignID string) ([]domain.Application, error)
	CreatorApplications(ctx context.Context, creatorID string) ([]domain.Application, error)

	// PostMessage appends a message to the conversation authorised by
	// the ledger: the pair must consist of the campaign's business owner
	// and a creator holding an application on that campaign.
	PostMessage(ctx context.Context, req PostMessageReq) (*domain.Message, error)
	Conversation(ctx context.Context, campaignID, creatorID, businessID string) ([]domain.Message, error)

	UnreadSummary(ctx context.Context, userID string) (*UnreadSummary, error)
	// MarkNotificationRead is idempotent and recipient-gated.
	MarkNotificationRead(ctx context.Context, notificationID, actingUserID string) error
}

// CreateCampaignReq carries a business's new campaign.
type CreateCampaignReq struct {
	BusinessID  string
	Title       string
	Description string
	Budget      int64
}

// CampaignView is a campaign decorated with owner display fields for
// list rendering.
type CampaignView struct {
	domain.Campaign
	BusinessName string `json:"business_name,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
}

// CampaignService exposes owner-gated campaign CRUD.
type CampaignService interface {
	CreateCampaign(ctx context.Context, req CreateCampaignReq) (*domain.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// ListCampaigns decorates each campaign with the owning business's
	// name and industry via a read-through identity lookup memoised for
	// the duration of the call.
	ListCampaigns(ctx context.Context, businessID string) ([]CampaignView, error)
	UpdateCampaign(ctx context.Context, id, actingBusinessID string, upd CampaignUpdate) (*domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id, actingBusinessID string) error
}

// RegisterReq carries a new account on either side of the marketplace.
type RegisterReq struct {
	Email      string
	Password   string
	Role       domain.Role
	Name       string
	Industry   string
	Categories []string
}

// IdentityService resolves user identifiers to roles and display names
// and owns account creation and credential checks. It issues no
// sessions; a successful login simply returns the identity.
type IdentityService interface {
	Register(ctx context.Context, req RegisterReq) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	Resolve(ctx context.Context, userID string) (*domain.Identity, error)
}
