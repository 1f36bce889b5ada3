package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"linkfluence/internal/adapter/memory"
	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

type testEnv struct {
	store      *memory.Store
	engagement *EngagementUseCase
	campaigns  *CampaignUseCase
	identity   *IdentityUseCase

	business *domain.User
	creator  *domain.User
	campaign *domain.Campaign
}

// newTestEnv wires the usecases over the in-memory store and plants one
// business, one creator and one active campaign.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	env := &testEnv{
		store:      store,
		engagement: NewEngagementUseCase(store, store, store, store),
		campaigns:  NewCampaignUseCase(store, store),
		identity:   NewIdentityUseCase(store),
	}

	ctx := context.Background()
	business, err := env.identity.Register(ctx, port.RegisterReq{
		Email: "biz@example.com", Password: "secret", Role: domain.RoleBusiness, Name: "Glow Cosmetics", Industry: "Beauty",
	})
	require.NoError(t, err)
	creator, err := env.identity.Register(ctx, port.RegisterReq{
		Email: "ana@example.com", Password: "secret", Role: domain.RoleCreator, Name: "Ana Reyes",
	})
	require.NoError(t, err)
	campaign, err := env.campaigns.CreateCampaign(ctx, port.CreateCampaignReq{
		BusinessID: business.ID, Title: "Spring Launch", Description: "Lip kit promo", Budget: 50000,
	})
	require.NoError(t, err)

	env.business = business
	env.creator = creator
	env.campaign = campaign
	return env
}

func (e *testEnv) apply(t *testing.T, creatorID, creatorName string) *domain.Application {
	t.Helper()
	app, err := e.engagement.SubmitApplication(context.Background(), port.SubmitApplicationReq{
		CampaignID:  e.campaign.ID,
		CreatorID:   creatorID,
		CreatorName: creatorName,
		CoverLetter: "Would love to collaborate.",
	})
	require.NoError(t, err)
	return app
}

func TestSubmitApplicationFanOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	app := env.apply(t, env.creator.ID, env.creator.Name)
	require.Equal(t, domain.ApplicationPending, app.Status)
	require.NotEmpty(t, app.ID)

	// the applicant list and the unread count observe the same event
	campaign, err := env.campaigns.GetCampaign(ctx, env.campaign.ID)
	require.NoError(t, err)
	require.Equal(t, []string{env.creator.ID}, campaign.Applicants)

	summary, err := env.engagement.UnreadSummary(ctx, env.business.ID)
	require.NoError(t, err)
	require.Equal(t, 1, summary.UnreadCount)
	require.Len(t, summary.Notifications, 1)
	require.Equal(t, domain.KindNewApplication, summary.Notifications[0].Kind)
	require.Contains(t, summary.Notifications[0].Message, "Ana Reyes")
	require.Contains(t, summary.Notifications[0].Message, "Spring Launch")
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	env := newTestEnv(t)

	env.apply(t, env.creator.ID, env.creator.Name)
	_, err := env.engagement.SubmitApplication(context.Background(), port.SubmitApplicationReq{
		CampaignID:  env.campaign.ID,
		CreatorID:   env.creator.ID,
		CreatorName: env.creator.Name,
	})
	require.ErrorIs(t, err, domain.ErrAlreadyApplied)

	// the failed duplicate must not fan out
	summary, err := env.engagement.UnreadSummary(context.Background(), env.business.ID)
	require.NoError(t, err)
	require.Equal(t, 1, summary.UnreadCount)
}

func TestSubmitApplicationCampaignMissingOrClosed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engagement.SubmitApplication(ctx, port.SubmitApplicationReq{
		CampaignID: "no-such-campaign", CreatorID: env.creator.ID, CreatorName: env.creator.Name,
	})
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)

	closed := domain.CampaignClosed
	_, err = env.campaigns.UpdateCampaign(ctx, env.campaign.ID, env.business.ID, port.CampaignUpdate{Status: &closed})
	require.NoError(t, err)

	_, err = env.engagement.SubmitApplication(ctx, port.SubmitApplicationReq{
		CampaignID: env.campaign.ID, CreatorID: env.creator.ID, CreatorName: env.creator.Name,
	})
	require.ErrorIs(t, err, domain.ErrCampaignClosed)
}

// TestConcurrentApply ensures two racing applies for the same pair end
// with exactly one success and one conflict, never two of either.
func TestConcurrentApply(t *testing.T) {
	env := newTestEnv(t)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := env.engagement.SubmitApplication(context.Background(), port.SubmitApplicationReq{
				CampaignID:  env.campaign.ID,
				CreatorID:   env.creator.ID,
				CreatorName: env.creator.Name,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrAlreadyApplied):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != attempts-1 {
		t.Fatalf("got %d successes and %d conflicts, want 1 and %d", successes, conflicts, attempts-1)
	}

	campaign, err := env.campaigns.GetCampaign(context.Background(), env.campaign.ID)
	require.NoError(t, err)
	require.Equal(t, []string{env.creator.ID}, campaign.Applicants)
}

// flakyLedger fails the first submits with a transient storage error,
// the way a commit-time serialization abort surfaces from the pool.
type flakyLedger struct {
	port.ApplicationLedger
	failures int
}

func (f *flakyLedger) SubmitApplication(ctx context.Context, app *domain.Application, note *domain.Notification) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("commit failed: serialization conflict")
	}
	return f.ApplicationLedger.SubmitApplication(ctx, app, note)
}

func TestSubmitApplicationRetriesTransientFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ledger := &flakyLedger{ApplicationLedger: env.store, failures: 1}
	engagement := NewEngagementUseCase(ledger, env.store, env.store, env.store)

	// one transient failure is absorbed by the internal retry
	app, err := engagement.SubmitApplication(ctx, port.SubmitApplicationReq{
		CampaignID: env.campaign.ID, CreatorID: env.creator.ID, CreatorName: env.creator.Name,
	})
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationPending, app.Status)

	stored, err := engagement.CampaignApplications(ctx, env.campaign.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	// two consecutive failures exhaust the single retry and surface
	other, err := env.identity.Register(ctx, port.RegisterReq{
		Email: "tom@example.com", Password: "secret", Role: domain.RoleCreator, Name: "Tom Okafor",
	})
	require.NoError(t, err)
	ledger.failures = 2
	_, err = engagement.SubmitApplication(ctx, port.SubmitApplicationReq{
		CampaignID: env.campaign.ID, CreatorID: other.ID, CreatorName: other.Name,
	})
	require.Error(t, err)
	require.False(t, domain.IsDomainError(err))
}

func TestNotificationFeedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	total := notificationLimit + 5
	for i := 0; i < total; i++ {
		c, err := env.identity.Register(ctx, port.RegisterReq{
			Email: fmt.Sprintf("c%d@example.com", i), Password: "secret", Role: domain.RoleCreator, Name: fmt.Sprintf("Creator %02d", i),
		})
		require.NoError(t, err)
		env.apply(t, c.ID, c.Name)
	}

	// the list is capped, the count covers the whole stream
	summary, err := env.engagement.UnreadSummary(ctx, env.business.ID)
	require.NoError(t, err)
	require.Len(t, summary.Notifications, notificationLimit)
	require.Equal(t, total, summary.UnreadCount)

	// newest first: the latest applicant heads the feed, the oldest
	// entries fall off the capped list
	require.Contains(t, summary.Notifications[0].Message, fmt.Sprintf("Creator %02d", total-1))
	require.Contains(t, summary.Notifications[notificationLimit-1].Message, fmt.Sprintf("Creator %02d", total-notificationLimit))
	for i := 1; i < len(summary.Notifications); i++ {
		require.False(t, summary.Notifications[i].CreatedAt.After(summary.Notifications[i-1].CreatedAt))
	}

	require.NoError(t, env.engagement.MarkNotificationRead(ctx, summary.Notifications[0].ID, env.business.ID))
	summary, err = env.engagement.UnreadSummary(ctx, env.business.ID)
	require.NoError(t, err)
	require.Len(t, summary.Notifications, notificationLimit)
	require.Equal(t, total-1, summary.UnreadCount)
}

func TestResolveApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	app := env.apply(t, env.creator.ID, env.creator.Name)

	// only the campaign owner may decide
	_, err := env.engagement.ResolveApplication(ctx, app.ID, domain.ApplicationAccepted, "someone-else")
	require.ErrorIs(t, err, domain.ErrNotOwner)

	// pending is not a decision
	_, err = env.engagement.ResolveApplication(ctx, app.ID, domain.ApplicationPending, env.business.ID)
	require.ErrorIs(t, err, domain.ErrInvalidDecision)

	decided, err := env.engagement.ResolveApplication(ctx, app.ID, domain.ApplicationAccepted, env.business.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationAccepted, decided.Status)

	// terminal states admit no further transition
	_, err = env.engagement.ResolveApplication(ctx, app.ID, domain.ApplicationRejected, env.business.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = env.engagement.ResolveApplication(ctx, app.ID, domain.ApplicationAccepted, env.business.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// the decision notified the creator and left a system message
	summary, err := env.engagement.UnreadSummary(ctx, env.creator.ID)
	require.NoError(t, err)
	require.Equal(t, 1, summary.UnreadCount)
	require.Equal(t, domain.KindApplicationUpdate, summary.Notifications[0].Kind)

	history, err := env.engagement.Conversation(ctx, env.campaign.ID, env.creator.ID, env.business.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "Your application was accepted.", history[0].Content)
	require.Equal(t, env.business.ID, history[0].SenderID)
}

func TestResolveApplicationNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.engagement.ResolveApplication(context.Background(), "missing", domain.ApplicationAccepted, env.business.ID)
	require.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestApplicationListsOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	second, err := env.identity.Register(ctx, port.RegisterReq{
		Email: "tom@example.com", Password: "secret", Role: domain.RoleCreator, Name: "Tom Okafor",
	})
	require.NoError(t, err)

	first := env.apply(t, env.creator.ID, env.creator.Name)
	next := env.apply(t, second.ID, second.Name)

	apps, err := env.engagement.CampaignApplications(ctx, env.campaign.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	require.Equal(t, first.ID, apps[0].ID)
	require.Equal(t, next.ID, apps[1].ID)

	mine, err := env.engagement.CreatorApplications(ctx, env.creator.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, first.ID, mine[0].ID)
}

func TestPostMessageAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// no application yet: the pair is not linked
	_, err := env.engagement.PostMessage(ctx, port.PostMessageReq{
		CampaignID: env.campaign.ID, SenderID: env.creator.ID, ReceiverID: env.business.ID, Content: "Hi",
	})
	require.ErrorIs(t, err, domain.ErrNotParticipant)

	env.apply(t, env.creator.ID, env.creator.Name)

	// whitespace-only content is rejected before any store call
	_, err = env.engagement.PostMessage(ctx, port.PostMessageReq{
		CampaignID: env.campaign.ID, SenderID: env.creator.ID, ReceiverID: env.business.ID, Content: "   ",
	})
	require.ErrorIs(t, err, domain.ErrEmptyContent)

	msg, err := env.engagement.PostMessage(ctx, port.PostMessageReq{
		CampaignID: env.campaign.ID, SenderID: env.creator.ID, ReceiverID: env.business.ID, Content: "Hi",
	})
	require.NoError(t, err)
	require.Equal(t, "Hi", msg.Content)

	// a creator who never applied cannot message, even with valid content
	stranger, err := env.identity.Register(ctx, port.RegisterReq{
		Email: "x@example.com", Password: "secret", Role: domain.RoleCreator, Name: "X",
	})
	require.NoError(t, err)
	_, err = env.engagement.PostMessage(ctx, port.PostMessageReq{
		CampaignID: env.campaign.ID, SenderID: stranger.ID, ReceiverID: env.business.ID, Content: "Hello",
	})
	require.ErrorIs(t, err, domain.ErrNotParticipant)

	// neither side of the pair is the campaign owner
	_, err = env.engagement.PostMessage(ctx, port.PostMessageReq{
		CampaignID: env.campaign.ID, SenderID: env.creator.ID, ReceiverID: stranger.ID, Content: "Hello",
	})
	require.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestConversationOrderAndSymmetry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.apply(t, env.creator.ID, env.creator.Name)

	contents := []string{"Hi", "Hello back", "When do we start?", "Monday"}
	senders := []string{env.creator.ID, env.business.ID, env.creator.ID, env.business.ID}
	receivers := []string{env.business.ID, env.creator.ID, env.business.ID, env.creator.ID}
	for i, content := range contents {
		_, err := env.engagement.PostMessage(ctx, port.PostMessageReq{
			CampaignID: env.campaign.ID, SenderID: senders[i], ReceiverID: receivers[i], Content: content,
		})
		require.NoError(t, err)
	}

	history, err := env.engagement.Conversation(ctx, env.campaign.ID, env.creator.ID, env.business.ID)
	require.NoError(t, err)
	require.Len(t, history, len(contents))
	for i := range history {
		require.Equal(t, contents[i], history[i].Content)
		if i > 0 {
			require.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt))
		}
	}

	// polling again returns the same view, no duplication
	again, err := env.engagement.Conversation(ctx, env.campaign.ID, env.creator.ID, env.business.ID)
	require.NoError(t, err)
	require.Equal(t, history, again)
}

func TestMarkNotificationRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.apply(t, env.creator.ID, env.creator.Name)

	summary, err := env.engagement.UnreadSummary(ctx, env.business.ID)
	require.NoError(t, err)
	require.Equal(t, 1, summary.UnreadCount)
	noteID := summary.Notifications[0].ID

	// only the recipient may mark
	err = env.engagement.MarkNotificationRead(ctx, noteID, env.creator.ID)
	require.ErrorIs(t, err, domain.ErrNotRecipient)

	require.NoError(t, env.engagement.MarkNotificationRead(ctx, noteID, env.business.ID))
	// idempotent: the second call is a no-op, not an error
	require.NoError(t, env.engagement.MarkNotificationRead(ctx, noteID, env.business.ID))

	summary, err = env.engagement.UnreadSummary(ctx, env.business.ID)
	require.NoError(t, err)
	require.Equal(t, 0, summary.UnreadCount)

	err = env.engagement.MarkNotificationRead(ctx, "missing", env.business.ID)
	require.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

// TestEngagementScenario walks the full lifecycle: apply, decide,
// message, and an unauthorized outsider.
func TestEngagementScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	app := env.apply(t, env.creator.ID, env.creator.Name)
	require.Equal(t, domain.ApplicationPending, app.Status)

	summary, err := env.engagement.UnreadSummary(ctx, env.business.ID)
	require.NoError(t, err)
	require.Equal(t, 1, summary.UnreadCount)

	campaign, err := env.campaigns.GetCampaign(ctx, env.campaign.ID)
	require.NoError(t, err)
	require.Equal(t, []string{env.creator.ID}, campaign.Applicants)

	decided, err := env.engagement.ResolveApplication(ctx, app.ID, domain.ApplicationAccepted, env.business.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationAccepted, decided.Status)

	_, err = env.engagement.ResolveApplication(ctx, app.ID, domain.ApplicationAccepted, env.business.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = env.engagement.PostMessage(ctx, port.PostMessageReq{
		CampaignID: env.campaign.ID, SenderID: env.creator.ID, ReceiverID: env.business.ID, Content: "Hi",
	})
	require.NoError(t, err)

	history, err := env.engagement.Conversation(ctx, env.campaign.ID, env.creator.ID, env.business.ID)
	require.NoError(t, err)
	// the acceptance system message precedes the creator's greeting
	require.Len(t, history, 2)
	require.Equal(t, "Your application was accepted.", history[0].Content)
	require.Equal(t, "Hi", history[1].Content)

	outsider, err := env.identity.Register(ctx, port.RegisterReq{
		Email: "outsider@example.com", Password: "secret", Role: domain.RoleCreator, Name: "X",
	})
	require.NoError(t, err)
	_, err = env.engagement.PostMessage(ctx, port.PostMessageReq{
		CampaignID: env.campaign.ID, SenderID: outsider.ID, ReceiverID: env.business.ID, Content: "Hi",
	})
	require.ErrorIs(t, err, domain.ErrNotParticipant)
}
