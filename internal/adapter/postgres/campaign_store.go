package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

// CampaignStore implements port.CampaignStore using pgxpool.
type CampaignStore struct {
	pool *pgxpool.Pool
}

// NewCampaignStore returns a new store instance.
func NewCampaignStore(pool *pgxpool.Pool) *CampaignStore {
	return &CampaignStore{pool: pool}
}

const campaignColumns = `id, business_id, title, description, budget, status, applicants, created_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.BusinessID,
		&c.Title,
		&c.Description,
		&c.Budget,
		&c.Status,
		&c.Applicants,
		&c.CreatedAt,
	)
	return c, err
}

func (r *CampaignStore) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.BusinessID, c.Title, c.Description, c.Budget, c.Status, c.Applicants, c.CreatedAt)
	return err
}

// GetCampaign returns a campaign by id, or nil when absent.
func (r *CampaignStore) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaigns returns campaigns newest first, optionally filtered by
// owning business.
func (r *CampaignStore) ListCampaigns(ctx context.Context, businessID string) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC, id DESC`
	args := []any{}
	if businessID != "" {
		query = `SELECT ` + campaignColumns + ` FROM campaigns WHERE business_id = $1 ORDER BY created_at DESC, id DESC`
		args = append(args, businessID)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

// UpdateCampaign applies the non-nil fields of upd and returns the
// updated campaign.
func (r *CampaignStore) UpdateCampaign(ctx context.Context, id string, upd port.CampaignUpdate) (*domain.Campaign, error) {
	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}
	c, err := scanCampaign(r.pool.QueryRow(ctx, `UPDATE campaigns SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			budget = COALESCE($4, budget),
			status = COALESCE($5, status)
		WHERE id = $1
		RETURNING `+campaignColumns,
		id, upd.Title, upd.Description, upd.Budget, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignStore) DeleteCampaign(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}
