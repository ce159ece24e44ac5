package assignment

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"

	"github.com/carebridge/carebridge/internal/domain/audit"
	"github.com/carebridge/carebridge/internal/domain/caregiver"
	"github.com/carebridge/carebridge/internal/domain/notification"
	"github.com/carebridge/carebridge/internal/domain/patient"
	"github.com/carebridge/carebridge/internal/platform/apperr"
)

// PatientStore is the slice of the patient repository the manager needs.
type PatientStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	SetAssignment(ctx context.Context, patientID uuid.UUID, caregiverID, supervisorID *uuid.UUID) error
	CountActiveByCaregiver(ctx context.Context, caregiverID uuid.UUID) (int, error)
}

// CaregiverStore is the slice of the caregiver repository the manager needs.
type CaregiverStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*caregiver.Caregiver, error)
	ListActiveByRole(ctx context.Context, role caregiver.Role) ([]*caregiver.Caregiver, error)
}

// Notifier delivers best-effort alerts; implementations never return errors.
type Notifier interface {
	AssignmentChanged(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, assignmentID uuid.UUID) *notification.Notification
}

// AuditRecorder appends best-effort journal entries.
type AuditRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action audit.Action, entityType string, entityID uuid.UUID, metadata map[string]interface{})
}

// Service orchestrates assignment decisions. Assignment records are
// append-only; the patient's pointer is the only mutable assignment state.
// Concurrent assigns to one patient are resolved last-writer-wins on the
// pointer; the history keeps every record either way.
type Service struct {
	assignments Repository
	patients    PatientStore
	caregivers  CaregiverStore
	notifier    Notifier
	auditor     AuditRecorder
	logger      zerolog.Logger
}

func NewService(assignments Repository, patients PatientStore, caregivers CaregiverStore, notifier Notifier, auditor AuditRecorder, logger zerolog.Logger) *Service {
	return &Service{
		assignments: assignments,
		patients:    patients,
		caregivers:  caregivers,
		notifier:    notifier,
		auditor:     auditor,
		logger:      logger,
	}
}

// requireAuthorizer loads the acting user and checks the authorizing role.
func (s *Service) requireAuthorizer(ctx context.Context, id uuid.UUID) (*caregiver.Caregiver, error) {
	actor, err := s.caregivers.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Unauthorized("authorizer not found", goerr.V("authorizer_id", id))
	}
	if !actor.Role.CanAuthorize() {
		return nil, apperr.Unauthorized("supervisor or admin role required", goerr.V("role", actor.Role))
	}
	return actor, nil
}

// AutoAssign scores every active caregiver against the patient and assigns
// the best match. Ties break on candidate order, first wins, so repeated
// calls over the same data pick the same caregiver. Caseload counts are read
// live per candidate; staleness across candidates within one call is
// accepted.
func (s *Service) AutoAssign(ctx context.Context, patientID, authorizerID uuid.UUID) (*Assignment, error) {
	if _, err := s.requireAuthorizer(ctx, authorizerID); err != nil {
		return nil, err
	}
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, apperr.NotFound("patient not found", goerr.V("patient_id", patientID))
	}

	candidates, err := s.caregivers.ListActiveByRole(ctx, caregiver.RoleCaregiver)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperr.NoCandidates("no active caregivers available")
	}

	var best *caregiver.Caregiver
	var bestScore ScoreResult
	for _, cand := range candidates {
		caseload, err := s.patients.CountActiveByCaregiver(ctx, cand.ID)
		if err != nil {
			return nil, err
		}
		res := Score(p, cand, caseload)
		if best == nil || res.Total > bestScore.Total {
			best = cand
			bestScore = res
		}
	}
	if bestScore.Total <= 0 {
		return nil, apperr.NoSuitableMatch("no caregiver scored above zero", goerr.V("patient_id", patientID))
	}

	score := bestScore.Total
	breakdown := bestScore.Breakdown
	a := &Assignment{
		PatientID:           p.ID,
		CaregiverID:         &best.ID,
		SupervisorID:        authorizerID,
		Method:              MethodAuto,
		Rationale:           BuildRationale(best.Name, breakdown),
		Score:               &score,
		Breakdown:           &breakdown,
		PreviousCaregiverID: p.AssignedCaregiverID,
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	if err := s.patients.SetAssignment(ctx, p.ID, a.CaregiverID, &authorizerID); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, authorizerID, audit.ActionAutoAssign, "patient", p.ID, map[string]interface{}{
		"assignment_id": a.ID.String(),
		"caregiver_id":  best.ID.String(),
		"score":         score,
	})
	return a, nil
}

// Assign records a manual assignment decided by a supervisor. Assigning the
// patient's current caregiver again is rejected rather than duplicated in
// the history.
func (s *Service) Assign(ctx context.Context, patientID, caregiverID, authorizerID uuid.UUID, reason string) (*Assignment, error) {
	if _, err := s.requireAuthorizer(ctx, authorizerID); err != nil {
		return nil, err
	}
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, apperr.NotFound("patient not found", goerr.V("patient_id", patientID))
	}
	cg, err := s.caregivers.GetByID(ctx, caregiverID)
	if err != nil {
		return nil, apperr.InvalidInput("caregiver not found", goerr.V("caregiver_id", caregiverID))
	}
	if cg.Role != caregiver.RoleCaregiver {
		return nil, apperr.InvalidInput("assignee must have the caregiver role", goerr.V("role", cg.Role))
	}
	if p.AssignedCaregiverID != nil && *p.AssignedCaregiverID == caregiverID {
		return nil, apperr.Conflict("patient is already assigned to this caregiver",
			goerr.V("patient_id", patientID), goerr.V("caregiver_id", caregiverID))
	}

	rationale := reason
	if rationale == "" {
		rationale = "Manually assigned by supervisor"
	}
	a := &Assignment{
		PatientID:           p.ID,
		CaregiverID:         &cg.ID,
		SupervisorID:        authorizerID,
		Method:              MethodManual,
		Rationale:           rationale,
		PreviousCaregiverID: p.AssignedCaregiverID,
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	if err := s.patients.SetAssignment(ctx, p.ID, a.CaregiverID, &authorizerID); err != nil {
		return nil, err
	}

	action := audit.ActionAssignPatient
	if a.PreviousCaregiverID != nil {
		action = audit.ActionReassignPatient
	}
	s.auditor.Record(ctx, authorizerID, action, "patient", p.ID, map[string]interface{}{
		"assignment_id": a.ID.String(),
		"caregiver_id":  cg.ID.String(),
	})
	s.notifier.AssignmentChanged(ctx, cg.ID, &authorizerID, p.Name, a.ID)
	return a, nil
}

// Unassign removes the caregiver referenced by an existing assignment. The
// removal itself is a new history record with a nil caregiver.
func (s *Service) Unassign(ctx context.Context, assignmentID, authorizerID uuid.UUID, reason string) (*Assignment, error) {
	if _, err := s.requireAuthorizer(ctx, authorizerID); err != nil {
		return nil, err
	}
	prev, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, apperr.NotFound("assignment not found", goerr.V("assignment_id", assignmentID))
	}
	if prev.CaregiverID == nil {
		return nil, apperr.Conflict("assignment is already an unassignment", goerr.V("assignment_id", assignmentID))
	}
	p, err := s.patients.GetByID(ctx, prev.PatientID)
	if err != nil {
		return nil, apperr.NotFound("patient not found", goerr.V("patient_id", prev.PatientID))
	}

	rationale := reason
	if rationale == "" {
		rationale = "Unassigned by supervisor"
	}
	rec := &Assignment{
		PatientID:           p.ID,
		CaregiverID:         nil,
		SupervisorID:        authorizerID,
		Method:              MethodManual,
		Rationale:           rationale,
		PreviousCaregiverID: prev.CaregiverID,
	}
	if err := s.assignments.Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.patients.SetAssignment(ctx, p.ID, nil, nil); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, authorizerID, audit.ActionUnassignPatient, "patient", p.ID, map[string]interface{}{
		"assignment_id":         rec.ID.String(),
		"previous_caregiver_id": prev.CaregiverID.String(),
	})
	s.notifier.AssignmentChanged(ctx, *prev.CaregiverID, &authorizerID, p.Name, rec.ID)
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("assignment not found", goerr.V("assignment_id", id))
	}
	return a, nil
}

// History returns every assignment event for a patient in creation order.
func (s *Service) History(ctx context.Context, patientID uuid.UUID) ([]*Assignment, error) {
	return s.assignments.ListByPatient(ctx, patientID)
}

func (s *Service) ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Assignment, int, error) {
	return s.assignments.ListByCaregiver(ctx, caregiverID, limit, offset)
}
