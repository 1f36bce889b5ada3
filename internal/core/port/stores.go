package port

import (
	"context"

	"linkfluence/internal/core/domain"
)

// Outbound ports for persistence. Implementations must be
// concurrency-safe. Lookups return (nil, nil) when the record does not
// exist; the usecase layer maps absence to the domain error taxonomy.

// ApplicationLedger owns the authoritative list of applications and
// their status transitions. The submit and decide operations take the
// fan-out records produced by the event (notifications, the system
// conversation message) so implementations can apply the whole bundle
// as a single atomic unit: either every record lands or none do.
type ApplicationLedger interface {
	// SubmitApplication stores the application, appends the creator to
	// the campaign's applicant list (at most once) and stores the
	// notification for the campaign owner. Fails with
	// domain.ErrCampaignNotFound / domain.ErrCampaignClosed when the
	// campaign cannot accept applications and domain.ErrAlreadyApplied
	// when an application for the (campaign, creator) pair exists.
	SubmitApplication(ctx context.Context, app *domain.Application, ownerNote *domain.Notification) error

	// DecideApplication applies a terminal status to a pending
	// application and stores the creator notification and system
	// message alongside it. Fails with domain.ErrApplicationNotFound or,
	// when the current status is not pending, domain.ErrInvalidTransition.
	// The transition is applied exactly once.
	DecideApplication(ctx context.Context, id string, decision domain.ApplicationStatus, creatorNote *domain.Notification, systemMsg *domain.Message) (*domain.Application, error)

	GetApplication(ctx context.Context, id string) (*domain.Application, error)
	// ListByCampaign returns applications in creation order, oldest first.
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.Application, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Application, error)
	// HasApplication reports whether any application links the creator
	// to the campaign, regardless of status.
	HasApplication(ctx context.Context, campaignID, creatorID string) (bool, error)
}

// CampaignUpdate carries the owner-editable fields of a campaign; nil
// fields are left unchanged.
type CampaignUpdate struct {
	Title       *string
	Description *string
	Budget      *int64
	Status      *domain.CampaignStatus
}

// CampaignStore owns campaign records. The applicant list is read here
// but only written through the ledger transaction.
type CampaignStore interface {
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// ListCampaigns returns campaigns newest first, optionally filtered
	// by owning business.
	ListCampaigns(ctx context.Context, businessID string) ([]domain.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, upd CampaignUpdate) (*domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
}

// NotificationStore owns notification records. Notifications are never
// deleted; MarkRead is the only mutation and is idempotent.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
	// ListForUser returns up to limit notifications newest first along
	// with the unread count over the user's whole stream.
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, int, error)
	GetNotification(ctx context.Context, id string) (*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// ConversationStore owns ordered message history. History must return
// the same view to both participants: ascending creation time, ties
// broken by insertion order at the store.
type ConversationStore interface {
	AppendMessage(ctx context.Context, m *domain.Message) error
	History(ctx context.Context, campaignID, creatorID, businessID string) ([]domain.Message, error)
}

// IdentityStore owns user accounts.
type IdentityStore interface {
	// CreateUser fails with domain.ErrEmailTaken on a duplicate email.
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
