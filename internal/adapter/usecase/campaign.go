package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

// CampaignUseCase implements port.CampaignService: owner-gated CRUD
// over campaigns plus the decorated list read model.
type CampaignUseCase struct {
	campaigns port.CampaignStore
	identity  port.IdentityStore
}

// NewCampaignUseCase creates a new usecase over the given stores.
func NewCampaignUseCase(campaigns port.CampaignStore, identity port.IdentityStore) *CampaignUseCase {
	return &CampaignUseCase{campaigns: campaigns, identity: identity}
}

func (u *CampaignUseCase) CreateCampaign(ctx context.Context, req port.CreateCampaignReq) (*domain.Campaign, error) {
	owner, err := u.identity.GetUser(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}
	c := &domain.Campaign{
		ID:          uuid.NewString(),
		BusinessID:  req.BusinessID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Status:      domain.CampaignActive,
		Applicants:  []string{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := withRetry(ctx, func() error {
		return u.campaigns.CreateCampaign(ctx, c)
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *CampaignUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := u.campaigns.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

// ListCampaigns decorates each campaign with the owner's display name
// and industry. The identity lookup is memoised per call, not in any
/// shared cache: the store of record stays authoritative.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, businessID string) ([]port.CampaignView, error) {
	campaigns, err := u.campaigns.ListCampaigns(ctx, businessID)
	if err != nil {
		return nil, err
	}
	owners := make(map[string]*domain.User, len(campaigns))
	views := make([]port.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		owner, ok := owners[c.BusinessID]
		if !ok {
			owner, err = u.identity.GetUser(ctx, c.BusinessID)
			if err != nil {
				return nil, err
			}
			owners[c.BusinessID] = owner
		}
		view := port.CampaignView{Campaign: c}
		if owner != nil {
			view.BusinessName = owner.Name
			view.BusinessType = owner.Industry
		}
		views = append(views, view)
	}
	return views, nil
}

func (u *CampaignUseCase) UpdateCampaign(ctx context.Context, id, actingBusinessID string, upd port.CampaignUpdate) (*domain.Campaign, error) {
	if err := u.requireOwner(ctx, id, actingBusinessID); err != nil {
		return nil, err
	}
	return u.campaigns.UpdateCampaign(ctx, id, upd)
}

func (u *CampaignUseCase) DeleteCampaign(ctx context.Context, id, actingBusinessID string) error {
	if err := u.requireOwner(ctx, id, actingBusinessID); err != nil {
		return err
	}
	return u.campaigns.DeleteCampaign(ctx, id)
}

func (u *CampaignUseCase) requireOwner(ctx context.Context, campaignID, actingBusinessID string) error {
	c, err := u.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCampaignNotFound
	}
	if c.BusinessID != actingBusinessID {
		return domain.ErrNotOwner
	}
	return nil
}
