package patient

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus is the closed set of patient case states.
type CaseStatus string

const (
	CaseActive CaseStatus = "active"
	CasePaused CaseStatus = "paused"
	CaseClosed CaseStatus = "closed"
)

func (s CaseStatus) Valid() bool {
	switch s {
	case CaseActive, CasePaused, CaseClosed:
		return true
	}
	return false
}

// Patient carries the denormalized current-assignment pointer. Assignment
// history lives in the assignment log, never here.
type Patient struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	Diagnoses            []string   `db:"diagnoses" json:"diagnoses"`
	Tags                 []string   `db:"tags" json:"tags"`
	Status               CaseStatus `db:"status" json:"status"`
	AssignedCaregiverID  *uuid.UUID `db:"assigned_caregiver_id" json:"assigned_caregiver_id,omitempty"`
	AssignedSupervisorID *uuid.UUID `db:"assigned_supervisor_id" json:"assigned_supervisor_id,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}
