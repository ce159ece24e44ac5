package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*Notification, int, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	// DeleteStale removes read notifications created before cutoff and any
	// notification whose expiry has passed.
	DeleteStale(ctx context.Context, cutoff, now time.Time) (int, error)
}
