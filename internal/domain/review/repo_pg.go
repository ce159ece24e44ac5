package review

import (
	"context"

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

const docCols = `id, kind, patient_id, author_id, title, content, status,
	reviewer_id, review_comments, submitted_at, reviewed_at, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.Kind, &d.PatientID, &d.AuthorID, &d.Title,
		&d.Content, &d.Status, &d.ReviewerID, &d.ReviewComments,
		&d.SubmittedAt, &d.ReviewedAt, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Document) error {
	d.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO review_document (id, kind, patient_id, author_id, title, content, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		d.ID, d.Kind, d.PatientID, d.AuthorID, d.Title, d.Content, d.Status).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+docCols+` FROM review_document WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *Document) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE review_document SET
			title = $2, content = $3, status = $4, reviewer_id = $5,
			review_comments = $6, submitted_at = $7, reviewed_at = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		d.ID, d.Title, d.Content, d.Status, d.ReviewerID,
		d.ReviewComments, d.SubmittedAt, d.ReviewedAt).Scan(&d.UpdatedAt)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Document, int, error) {
	return r.list(ctx, `patient_id = $1`, patientID, limit, offset)
}

func (r *repoPG) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*Document, int, error) {
	return r.list(ctx, `author_id = $1`, authorID, limit, offset)
}

func (r *repoPG) ListByStatus(ctx context.Context, status DocumentStatus, limit, offset int) ([]*Document, int, error) {
	return r.list(ctx, `status = $1`, status, limit, offset)
}

func (r *repoPG) list(ctx context.Context, filter string, arg interface{}, limit, offset int) ([]*Document, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM review_document WHERE `+filter, arg).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+docCols+` FROM review_document WHERE `+filter+`
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, arg, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Document
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
