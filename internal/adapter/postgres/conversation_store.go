package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkfluence/internal/core/domain"
)

// ConversationStore implements port.ConversationStore using pgxpool.
// The messages table carries a bigserial seq column assigned at insert;
// ordering by (created_at, seq) gives both participants the identical
// view with a stable tie-break for concurrent sends.
type ConversationStore struct {
	pool *pgxpool.Pool
}

// NewConversationStore returns a new store instance.
func NewConversationStore(pool *pgxpool.Pool) *ConversationStore {
	return &ConversationStore{pool: pool}
}

func (r *ConversationStore) AppendMessage(ctx context.Context, m *domain.Message) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO messages (id, campaign_id, sender_id, receiver_id, content, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.CampaignID, m.SenderID, m.ReceiverID, m.Content, m.CreatedAt)
	return err
}

// History returns the conversation for a (campaign, creator, business)
// triple in ascending creation order. Direction is reconstructed per
// message, so the sender/receiver swap is part of the match.
func (r *ConversationStore) History(ctx context.Context, campaignID, creatorID, businessID string) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, campaign_id, sender_id, receiver_id, content, created_at
		FROM messages
		WHERE campaign_id = $1
		  AND ((sender_id = $2 AND receiver_id = $3) OR (sender_id = $3 AND receiver_id = $2))
		ORDER BY created_at, seq`,
		campaignID, creatorID, businessID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Message, error) {
		var m domain.Message
		err := row.Scan(&m.ID, &m.CampaignID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt)
		return m, err
	})
}
