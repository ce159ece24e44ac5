package assignment

import (
	"time"

	"github.com/google/uuid"
)

// Method records how an assignment was decided.
type Method string

const (
	MethodAuto   Method = "auto"
	MethodManual Method = "manual"
)

// ScoreBreakdown carries the four sub-scores on the 0..100 scale, before
// weighting. Fixed shape so the weighting formula stays statically checkable.
type ScoreBreakdown struct {
	SpecialtyMatch float64 `json:"specialty_match"`
	Availability   float64 `json:"availability"`
	Caseload       float64 `json:"caseload"`
	Experience     float64 `json:"experience"`
}

// ScoreResult is the scorer output: weighted total plus the raw sub-scores.
type ScoreResult struct {
	Total     float64        `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// Assignment is one assignment event, immutable once created. A nil
// CaregiverID marks an unassignment event. The full per-patient history is
// the set of these records ordered by creation time.
type Assignment struct {
	ID                  uuid.UUID       `db:"id" json:"id"`
	PatientID           uuid.UUID       `db:"patient_id" json:"patient_id"`
	CaregiverID         *uuid.UUID      `db:"caregiver_id" json:"caregiver_id,omitempty"`
	SupervisorID        uuid.UUID       `db:"supervisor_id" json:"supervisor_id"`
	Method              Method          `db:"method" json:"method"`
	Rationale           string          `db:"rationale" json:"rationale"`
	Score               *float64        `db:"score" json:"score,omitempty"`
	Breakdown           *ScoreBreakdown `db:"breakdown" json:"breakdown,omitempty"`
	PreviousCaregiverID *uuid.UUID      `db:"previous_caregiver_id" json:"previous_caregiver_id,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
}
