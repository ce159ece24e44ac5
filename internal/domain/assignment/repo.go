package assignment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	// ListByPatient returns the full assignment history in creation order.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assignment, error)
	ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Assignment, int, error)
}
