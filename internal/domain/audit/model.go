package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action is the closed set of auditable operations.
type Action string

const (
	ActionAssignPatient   Action = "assign_patient"
	ActionReassignPatient Action = "reassign_patient"
	ActionUnassignPatient Action = "unassign_patient"
	ActionAutoAssign      Action = "auto_assign_patient"
	ActionSubmitDocument  Action = "submit_document"
	ActionApproveDocument Action = "approve_document"
	ActionRequestRevision Action = "request_revision"
	ActionCleanupSweep    Action = "notification_cleanup"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Entry records who did what to which entity. Entries are append-only and
// never touched again by normal operation.
type Entry struct {
	ID         uuid.UUID              `db:"id" json:"id"`
	ActorID    uuid.UUID              `db:"actor_id" json:"actor_id"`
	Action     Action                 `db:"action" json:"action"`
	EntityType string                 `db:"entity_type" json:"entity_type"`
	EntityID   uuid.UUID              `db:"entity_id" json:"entity_id"`
	Metadata   map[string]interface{} `db:"metadata" json:"metadata,omitempty"`
	Severity   Severity               `db:"severity" json:"severity"`
	CreatedAt  time.Time              `db:"created_at" json:"created_at"`
}
