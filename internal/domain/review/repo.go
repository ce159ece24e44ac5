package review

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	Update(ctx context.Context, d *Document) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Document, int, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*Document, int, error)
	ListByStatus(ctx context.Context, status DocumentStatus, limit, offset int) ([]*Document, int, error)
}
