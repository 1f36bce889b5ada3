package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkfluence/internal/core/domain"
)

// ApplicationLedger implements port.ApplicationLedger using pgxpool.
// Submit and decide run as serializable transactions so the whole
// fan-out bundle (application, applicant list, notifications, system
// message) commits or rolls back together.
type ApplicationLedger struct {
	pool *pgxpool.Pool
}

// NewApplicationLedger returns a new ledger instance.
func NewApplicationLedger(pool *pgxpool.Pool) *ApplicationLedger {
	return &ApplicationLedger{pool: pool}
}

const applicationColumns = `id, campaign_id, creator_id, creator_name, cover_letter, bid_amount, status, created_at, updated_at`

func scanApplication(row pgx.Row) (domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID,
		&a.CampaignID,
		&a.CreatorID,
		&a.CreatorName,
		&a.CoverLetter,
		&a.BidAmount,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SubmitApplication inserts the application, appends the creator to the
// campaign's applicant list and stores the owner notification in one
// transaction. The unique index on (campaign_id, creator_id) is the
// authoritative duplicate check: of two concurrent submits one commits
// and the other observes the violation.
func (r *ApplicationLedger) SubmitApplication(ctx context.Context, app *domain.Application, ownerNote *domain.Notification) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	// Serialization conflicts can surface at COMMIT, so the commit error
	// must reach the caller or the bundle silently rolls back.
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
		if isUniqueViolation(err) {
			err = domain.ErrAlreadyApplied
		}
	}()

	// lock campaign row for the applicant-list append
	var status domain.CampaignStatus
	err = tx.QueryRow(ctx, `SELECT status FROM campaigns WHERE id = $1 FOR UPDATE`, app.CampaignID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		err = domain.ErrCampaignNotFound
		return err
	}
	if err != nil {
		return err
	}
	if status != domain.CampaignActive {
		err = domain.ErrCampaignClosed
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO applications (`+applicationColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		app.ID, app.CampaignID, app.CreatorID, app.CreatorName, app.CoverLetter, app.BidAmount, app.Status, app.CreatedAt, app.UpdatedAt)
	if isUniqueViolation(err) {
		err = domain.ErrAlreadyApplied
		return err
	}
	if err != nil {
		return err
	}

	// at-most-once append even if retried
	_, err = tx.Exec(ctx, `UPDATE campaigns SET applicants = array_append(applicants, $1) WHERE id = $2 AND NOT ($1 = ANY (applicants))`,
		app.CreatorID, app.CampaignID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO notifications (id, user_id, campaign_id, kind, title, message, read, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		ownerNote.ID, ownerNote.UserID, ownerNote.CampaignID, ownerNote.Kind, ownerNote.Title, ownerNote.Message, ownerNote.Read, ownerNote.CreatedAt)
	return err
}

// DecideApplication applies a terminal status to a pending application
// and stores the creator notification and system message in the same
// transaction.
func (r *ApplicationLedger) DecideApplication(ctx context.Context, id string, decision domain.ApplicationStatus, creatorNote *domain.Notification, systemMsg *domain.Message) (decided *domain.Application, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if err = tx.Commit(ctx); err != nil {
			decided = nil
		}
	}()

	app, err := scanApplication(tx.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		err = domain.ErrApplicationNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		err = domain.ErrInvalidTransition
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, decision, now, id)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `INSERT INTO notifications (id, user_id, campaign_id, kind, title, message, read, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		creatorNote.ID, creatorNote.UserID, creatorNote.CampaignID, creatorNote.Kind, creatorNote.Title, creatorNote.Message, creatorNote.Read, creatorNote.CreatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `INSERT INTO messages (id, campaign_id, sender_id, receiver_id, content, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		systemMsg.ID, systemMsg.CampaignID, systemMsg.SenderID, systemMsg.ReceiverID, systemMsg.Content, systemMsg.CreatedAt)
	if err != nil {
		return nil, err
	}

	app.Status = decision
	app.UpdatedAt = now
	return &app, nil
}

// GetApplication returns an application by id, or nil when absent.
func (r *ApplicationLedger) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	app, err := scanApplication(r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByCampaign returns applications for a campaign oldest first.
func (r *ApplicationLedger) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE campaign_id = $1 ORDER BY created_at, id`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Application, error) {
		return scanApplication(row)
	})
}

// ListByCreator returns a creator's applications oldest first.
func (r *ApplicationLedger) ListByCreator(ctx context.Context, creatorID string) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE creator_id = $1 ORDER BY created_at, id`, creatorID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Application, error) {
		return scanApplication(row)
	})
}

// HasApplication reports whether any application links the creator to
// the campaign.
func (r *ApplicationLedger) HasApplication(ctx context.Context, campaignID, creatorID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE campaign_id = $1 AND creator_id = $2)`, campaignID, creatorID).Scan(&exists)
	return exists, err
}
