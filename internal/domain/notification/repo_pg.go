package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebridge/carebridge/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const notifCols = `id, recipient_id, sender_id, type, title, message, priority,
	read, read_at, payload, expires_at, created_at`

func (r *repoPG) scan(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title,
		&n.Message, &n.Priority, &n.Read, &n.ReadAt, &n.Payload,
		&n.ExpiresAt, &n.CreatedAt)
	return &n, err
}

func (r *repoPG) Create(ctx context.Context, n *Notification) error {
	n.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO notification (id, recipient_id, sender_id, type, title, message,
			priority, payload, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message,
		n.Priority, n.Payload, n.ExpiresAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+notifCols+` FROM notification WHERE id = $1`, id))
}

func (r *repoPG) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE notification SET read = TRUE, read_at = $2 WHERE id = $1 AND read = FALSE`, id, at)
	return err
}

func (r *repoPG) MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE notification SET read = TRUE, read_at = $2
		WHERE recipient_id = $1 AND read = FALSE`, recipientID, at)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM notification WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*Notification, int, error) {
	filter := `WHERE recipient_id = $1`
	if unreadOnly {
		filter += ` AND read = FALSE`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM notification `+filter, recipientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+notifCols+` FROM notification `+filter+`
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Notification
	for rows.Next() {
		n, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, nil
}

func (r *repoPG) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM notification WHERE recipient_id = $1 AND read = FALSE`, recipientID).Scan(&count)
	return count, err
}

func (r *repoPG) DeleteStale(ctx context.Context, cutoff, now time.Time) (int, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM notification
		WHERE (read = TRUE AND created_at < $1)
		   OR (expires_at IS NOT NULL AND expires_at < $2)`, cutoff, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
