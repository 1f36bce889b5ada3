package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"linkfluence/internal/adapter/memory"
	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

func TestCampaignLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.campaign
	require.Equal(t, domain.CampaignActive, created.Status)
	require.Empty(t, created.Applicants)

	got, err := env.campaigns.GetCampaign(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)

	// edits are owner-gated
	title := "Renamed"
	_, err = env.campaigns.UpdateCampaign(ctx, created.ID, "not-the-owner", port.CampaignUpdate{Title: &title})
	require.ErrorIs(t, err, domain.ErrNotOwner)

	updated, err := env.campaigns.UpdateCampaign(ctx, created.ID, env.business.ID, port.CampaignUpdate{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, created.Budget, updated.Budget)

	err = env.campaigns.DeleteCampaign(ctx, created.ID, "not-the-owner")
	require.ErrorIs(t, err, domain.ErrNotOwner)
	require.NoError(t, env.campaigns.DeleteCampaign(ctx, created.ID, env.business.ID))

	_, err = env.campaigns.GetCampaign(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestCreateCampaignUnknownBusiness(t *testing.T) {
	store := memory.NewStore()
	svc := NewCampaignUseCase(store, store)
	_, err := svc.CreateCampaign(context.Background(), port.CreateCampaignReq{
		BusinessID: "ghost", Title: "No owner",
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListCampaignsDecoratesOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	other, err := env.identity.Register(ctx, port.RegisterReq{
		Email: "peak@example.com", Password: "pw", Role: domain.RoleBusiness, Name: "Peak Fitness", Industry: "Fitness",
	})
	require.NoError(t, err)
	_, err = env.campaigns.CreateCampaign(ctx, port.CreateCampaignReq{
		BusinessID: other.ID, Title: "Gym Tour", Budget: 10000,
	})
	require.NoError(t, err)

	views, err := env.campaigns.ListCampaigns(ctx, "")
	require.NoError(t, err)
	require.Len(t, views, 2)
	// newest first
	require.Equal(t, "Gym Tour", views[0].Title)
	require.Equal(t, "Peak Fitness", views[0].BusinessName)
	require.Equal(t, "Fitness", views[0].BusinessType)
	require.Equal(t, "Glow Cosmetics", views[1].BusinessName)

	mine, err := env.campaigns.ListCampaigns(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Gym Tour", mine[0].Title)
}
