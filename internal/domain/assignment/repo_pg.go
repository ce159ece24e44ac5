package assignment

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

const asgCols = `id, patient_id, caregiver_id, supervisor_id, method, rationale,
	score, breakdown, previous_caregiver_id, created_at`

func (r *repoPG) scan(row pgx.Row) (*Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.PatientID, &a.CaregiverID, &a.SupervisorID,
		&a.Method, &a.Rationale, &a.Score, &a.Breakdown,
		&a.PreviousCaregiverID, &a.CreatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Assignment) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO assignment (id, patient_id, caregiver_id, supervisor_id,
			method, rationale, score, breakdown, previous_caregiver_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at`,
		a.ID, a.PatientID, a.CaregiverID, a.SupervisorID, a.Method,
		a.Rationale, a.Score, a.Breakdown, a.PreviousCaregiverID).Scan(&a.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+asgCols+` FROM assignment WHERE id = $1`, id))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assignment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+asgCols+` FROM assignment
		WHERE patient_id = $1 ORDER BY created_at ASC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Assignment
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Assignment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM assignment WHERE caregiver_id = $1`, caregiverID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+asgCols+` FROM assignment
		WHERE caregiver_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, caregiverID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Assignment
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
