package caregiver

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cg *Caregiver) error
	GetByID(ctx context.Context, id uuid.UUID) (*Caregiver, error)
	Update(ctx context.Context, cg *Caregiver) error
	List(ctx context.Context, limit, offset int) ([]*Caregiver, int, error)
	ListActiveByRole(ctx context.Context, role Role) ([]*Caregiver, error)
}
