package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkfluence/internal/core/domain"
)

// NotificationStore implements port.NotificationStore using pgxpool.
type NotificationStore struct {
	pool *pgxpool.Pool
}

// NewNotificationStore returns a new store instance.
func NewNotificationStore(pool *pgxpool.Pool) *NotificationStore {
	return &NotificationStore{pool: pool}
}

const notificationColumns = `id, user_id, campaign_id, kind, title, message, read, created_at`

func scanNotification(row pgx.Row) (domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.CampaignID,
		&n.Kind,
		&n.Title,
		&n.Message,
		&n.Read,
		&n.CreatedAt,
	)
	return n, err
}

func (r *NotificationStore) CreateNotification(ctx context.Context, n *domain.Notification) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO notifications (`+notificationColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		n.ID, n.UserID, n.CampaignID, n.Kind, n.Title, n.Message, n.Read, n.CreatedAt)
	return err
}

// ListForUser returns up to limit notifications newest first plus the
// unread count over the user's whole stream.
func (r *NotificationStore) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, int, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, 0, err
	}
	notes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		return scanNotification(row)
	})
	if err != nil {
		return nil, 0, err
	}
	var unread int
	err = r.pool.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`, userID).Scan(&unread)
	if err != nil {
		return nil, 0, err
	}
	return notes, unread, nil
}

// GetNotification returns a notification by id, or nil when absent.
func (r *NotificationStore) GetNotification(ctx context.Context, id string) (*domain.Notification, error) {
	n, err := scanNotification(r.pool.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead flips the read flag. Marking an already-read notification is
// a no-op, not an error.
func (r *NotificationStore) MarkRead(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
