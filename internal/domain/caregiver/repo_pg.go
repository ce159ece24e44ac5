package caregiver

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

const cgCols = `id, name, email, role, specialties, weekly_capacity, weekly_schedule,
	years_experience, active, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Caregiver, error) {
	var cg Caregiver
	err := row.Scan(&cg.ID, &cg.Name, &cg.Email, &cg.Role, &cg.Specialties,
		&cg.WeeklyCapacity, &cg.WeeklySchedule, &cg.YearsExperience,
		&cg.Active, &cg.CreatedAt, &cg.UpdatedAt)
	return &cg, err
}

func (r *repoPG) Create(ctx context.Context, cg *Caregiver) error {
	cg.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO caregiver (id, name, email, role, specialties, weekly_capacity,
			weekly_schedule, years_experience, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		cg.ID, cg.Name, cg.Email, cg.Role, cg.Specialties, cg.WeeklyCapacity,
		cg.WeeklySchedule, cg.YearsExperience, cg.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Caregiver, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+cgCols+` FROM caregiver WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, cg *Caregiver) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE caregiver SET name=$2, email=$3, role=$4, specialties=$5,
			weekly_capacity=$6, weekly_schedule=$7, years_experience=$8,
			active=$9, updated_at=NOW()
		WHERE id = $1`,
		cg.ID, cg.Name, cg.Email, cg.Role, cg.Specialties, cg.WeeklyCapacity,
		cg.WeeklySchedule, cg.YearsExperience, cg.Active)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Caregiver, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM caregiver`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+cgCols+` FROM caregiver ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Caregiver
	for rows.Next() {
		cg, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cg)
	}
	return items, total, nil
}

func (r *repoPG) ListActiveByRole(ctx context.Context, role Role) ([]*Caregiver, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cgCols+` FROM caregiver
		WHERE role = $1 AND active = TRUE
		ORDER BY created_at ASC`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Caregiver
	for rows.Next() {
		cg, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, cg)
	}
	return items, nil
}
