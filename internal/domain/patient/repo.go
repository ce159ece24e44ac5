package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	// SetAssignment updates the current-assignment pointer. Nil ids clear it.
	SetAssignment(ctx context.Context, patientID uuid.UUID, caregiverID, supervisorID *uuid.UUID) error
	// CountActiveByCaregiver returns the caregiver's live caseload: patients
	// with an active case currently pointing at them.
	CountActiveByCaregiver(ctx context.Context, caregiverID uuid.UUID) (int, error)
}
