package audit

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]*Entry, int, error)
	ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*Entry, int, error)
}
