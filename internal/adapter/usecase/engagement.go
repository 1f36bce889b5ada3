package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

// EngagementUseCase orchestrates the application ledger, notification
// dispatch and conversation store. It implements port.EngagementService.
// All cross-entity authorization lives here; atomicity of the fan-out
// bundles lives in the ledger implementations.
type EngagementUseCase struct {
	ledger        port.ApplicationLedger
	campaigns     port.CampaignStore
	notifications port.NotificationStore
	conversations port.ConversationStore
}

// notificationLimit caps the notification list read model. The unread
// count is still computed over the whole stream.
const notificationLimit = 50

// NewEngagementUseCase creates a new usecase over the given stores.
func NewEngagementUseCase(ledger port.ApplicationLedger, campaigns port.CampaignStore, notifications port.NotificationStore, conversations port.ConversationStore) *EngagementUseCase {
	return &EngagementUseCase{
		ledger:        ledger,
		campaigns:     campaigns,
		notifications: notifications,
		conversations: conversations,
	}
}

// withRetry runs op and retries it once when the failure is not a
// domain error. Domain errors are definitive and must not be retried;
// a transient storage failure gets a single second chance before it
// surfaces as a server error.
func withRetry(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || domain.IsDomainError(err) || ctx.Err() != nil {
		return err
	}
	return op()
}

// SubmitApplication records a pending application and fans out the
// owner notification atomically. The ledger transaction re-checks
// campaign state and uniqueness, so the read here only shapes the
// notification text and cannot race a concurrent submit.
func (u *EngagementUseCase) SubmitApplication(ctx context.Context, req port.SubmitApplicationReq) (*domain.Application, error) {
	campaign, err := u.campaigns.GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrCampaignNotFound
	}
	if campaign.Status != domain.CampaignActive {
		return nil, domain.ErrCampaignClosed
	}

	now := time.Now().UTC()
	app := &domain.Application{
		ID:          uuid.NewString(),
		CampaignID:  campaign.ID,
		CreatorID:   req.CreatorID,
		CreatorName: req.CreatorName,
		CoverLetter: req.CoverLetter,
		BidAmount:   req.BidAmount,
		Status:      domain.ApplicationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	note := &domain.Notification{
		ID:         uuid.NewString(),
		UserID:     campaign.BusinessID,
		CampaignID: campaign.ID,
		Kind:       domain.KindNewApplication,
		Title:      "New Application!",
		Message:    fmt.Sprintf("%s applied for your campaign: %s", req.CreatorName, campaign.Title),
		CreatedAt:  now,
	}
	// If the first attempt commits but its ack is lost, the retry hits
	// the unique index and reports ErrAlreadyApplied for a submit that
	// in fact went through. The creator's application list shows the
	// pending entry either way.
	if err = withRetry(ctx, func() error {
		return u.ledger.SubmitApplication(ctx, app, note)
	}); err != nil {
		return nil, err
	}
	return app, nil
}

// ResolveApplication applies an accept/reject decision on behalf of the
// acting business. The decision notification and the system message to
// the conversation are written in the same ledger transaction as the
// status transition.
func (u *EngagementUseCase) ResolveApplication(ctx context.Context, applicationID string, decision domain.ApplicationStatus, actingBusinessID string) (*domain.Application, error) {
	if !decision.Decision() {
		return nil, domain.ErrInvalidDecision
	}
	app, err := u.ledger.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrApplicationNotFound
	}
	campaign, err := u.campaigns.GetCampaign(ctx, app.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrCampaignNotFound
	}
	if campaign.BusinessID != actingBusinessID {
		return nil, domain.ErrNotOwner
	}

	title := "Application Accepted"
	if decision == domain.ApplicationRejected {
		title = "Application Rejected"
	}
	now := time.Now().UTC()
	note := &domain.Notification{
		ID:         uuid.NewString(),
		UserID:     app.CreatorID,
		CampaignID: app.CampaignID,
		Kind:       domain.KindApplicationUpdate,
		Title:      title,
		Message:    fmt.Sprintf("Your application for '%s' was %s!", campaign.Title, decision),
		CreatedAt:  now,
	}
	sysMsg := &domain.Message{
		ID:         uuid.NewString(),
		CampaignID: app.CampaignID,
		SenderID:   campaign.BusinessID,
		ReceiverID: app.CreatorID,
		Content:    fmt.Sprintf("Your application was %s.", decision),
		CreatedAt:  now,
	}

	var decided *domain.Application
	err = withRetry(ctx, func() error {
		var innerErr error
		decided, innerErr = u.ledger.DecideApplication(ctx, applicationID, decision, note, sysMsg)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// CampaignApplications lists a campaign's applications oldest first.
func (u *EngagementUseCase) CampaignApplications(ctx context.Context, campaignID string) ([]domain.Application, error) {
	return u.ledger.ListByCampaign(ctx, campaignID)
}

// CreatorApplications lists a creator's applications oldest first.
func (u *EngagementUseCase) CreatorApplications(ctx context.Context, creatorID string) ([]domain.Application, error) {
	return u.ledger.ListByCreator(ctx, creatorID)
}

// PostMessage appends a message to the conversation between the two
// parties. Authorization is derived from the ledger: one party must own
// the campaign, the other must hold an application on it.
func (u *EngagementUseCase) PostMessage(ctx context.Context, req port.PostMessageReq) (*domain.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, domain.ErrEmptyContent
	}
	if _, err := u.authorizePair(ctx, req.CampaignID, req.SenderID, req.ReceiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:         uuid.NewString(),
		CampaignID: req.CampaignID,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    strings.TrimSpace(req.Content),
		CreatedAt:  time.Now().UTC(),
	}
	if err := withRetry(ctx, func() error {
		return u.conversations.AppendMessage(ctx, msg)
	}); err != nil {
		return nil, err
	}
	return msg, nil
}

// authorizePair resolves which side of the pair is the creator and
// verifies the ledger links them for this campaign. Returns the creator
// id on success.
func (u *EngagementUseCase) authorizePair(ctx context.Context, campaignID, senderID, receiverID string) (string, error) {
	campaign, err := u.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return "", err
	}
	if campaign == nil {
		return "", domain.ErrNotParticipant
	}
	var creatorID string
	switch campaign.BusinessID {
	case senderID:
		creatorID = receiverID
	case receiverID:
		creatorID = senderID
	default:
		return "", domain.ErrNotParticipant
	}
	ok, err := u.ledger.HasApplication(ctx, campaignID, creatorID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNotParticipant
	}
	return creatorID, nil
}

// Conversation returns the message history for the triple, identical
// for both participants and safe to poll.
func (u *EngagementUseCase) Conversation(ctx context.Context, campaignID, creatorID, businessID string) ([]domain.Message, error) {
	return u.conversations.History(ctx, campaignID, creatorID, businessID)
}

// UnreadSummary returns the newest notifications plus the unread count.
func (u *EngagementUseCase) UnreadSummary(ctx context.Context, userID string) (*port.UnreadSummary, error) {
	notes, unread, err := u.notifications.ListForUser(ctx, userID, notificationLimit)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	return &port.UnreadSummary{Notifications: notes, UnreadCount: unread}, nil
}

// MarkNotificationRead flips the read flag for the recipient. Marking
// twice is a no-op.
func (u *EngagementUseCase) MarkNotificationRead(ctx context.Context, notificationID, actingUserID string) error {
	n, err := u.notifications.GetNotification(ctx, notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotificationNotFound
	}
	if n.UserID != actingUserID {
		return domain.ErrNotRecipient
	}
	if n.Read {
		return nil
	}
	return withRetry(ctx, func() error {
		return u.notifications.MarkRead(ctx, notificationID)
	})
}
