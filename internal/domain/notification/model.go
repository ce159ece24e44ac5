package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type tags the event that produced a notification.
type Type string

const (
	TypeAssignmentChanged Type = "assignment_changed"
	TypePlanSubmitted     Type = "plan_submitted"
	TypePlanApproved      Type = "plan_approved"
	TypePlanNeedsRevision Type = "plan_needs_revision"
	TypeReportSubmitted   Type = "report_submitted"
	TypeReportDue         Type = "report_due"
	TypeRatingReceived    Type = "rating_received"
	TypeSystemAlert       Type = "system_alert"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAssignmentChanged, TypePlanSubmitted, TypePlanApproved,
		TypePlanNeedsRevision, TypeReportSubmitted, TypeReportDue,
		TypeRatingReceived, TypeSystemAlert:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Notification is created by a side effect, mutated only by mark-read, and
// removed by explicit deletion or the cleanup sweep.
type Notification struct {
	ID          uuid.UUID              `db:"id" json:"id"`
	RecipientID uuid.UUID              `db:"recipient_id" json:"recipient_id"`
	SenderID    *uuid.UUID             `db:"sender_id" json:"sender_id,omitempty"`
	Type        Type                   `db:"type" json:"type"`
	Title       string                 `db:"title" json:"title"`
	Message     string                 `db:"message" json:"message"`
	Priority    Priority               `db:"priority" json:"priority"`
	Read        bool                   `db:"read" json:"read"`
	ReadAt      *time.Time             `db:"read_at" json:"read_at,omitempty"`
	Payload     map[string]interface{} `db:"payload" json:"payload,omitempty"`
	ExpiresAt   *time.Time             `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt   time.Time              `db:"created_at" json:"created_at"`
}
